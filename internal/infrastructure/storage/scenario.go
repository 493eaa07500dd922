package storage

import (
	"dune-core/internal/domain"
	"dune-core/pkg/logger"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Чанк ландшафта сценария: ключ "C" + строка(2 цифры) + столбец(2 цифры),
// значение "flags,ground".
//
//	flags: биты 0-2 владелец, 3 раскрыта, 4 юнит, 5 постройка, 6 эффект
//	ground: номер спрайта земли (9 бит)
const (
	chunkOwnerMask  = 0x07
	chunkRevealed   = 1 << 3
	chunkUnit       = 1 << 4
	chunkStructure  = 1 << 5
	chunkEffect     = 1 << 6
	chunkGroundMask = 0x1FF
)

// ChunkCell - одна клетка чанка. Флаги присутствия только информационные:
// оккупанты восстанавливаются размещением, а не загрузкой.
type ChunkCell struct {
	Pos          domain.PackedCoordinate
	Ground       uint16
	Owner        domain.Faction
	Revealed     bool
	HasUnit      bool
	HasStructure bool
	HasEffect    bool
}

// ChunkKey строит ключ чанка для клетки.
func ChunkKey(p domain.PackedCoordinate) string {
	return fmt.Sprintf("C%02d%02d", p.Y(), p.X())
}

// ParseChunkKey разбирает ключ. Ключи не по формату дают false:
// оба поля строго из двух десятичных цифр, без знака.
func ParseChunkKey(key string) (domain.PackedCoordinate, bool) {
	if len(key) != 5 || key[0] != 'C' {
		return domain.InvalidPacked, false
	}
	row, ok := twoDigits(key[1:3])
	if !ok {
		return domain.InvalidPacked, false
	}
	col, ok := twoDigits(key[3:5])
	if !ok {
		return domain.InvalidPacked, false
	}
	if row >= domain.MapSide || col >= domain.MapSide {
		return domain.InvalidPacked, false
	}
	p := domain.PackXY(col, row)
	if p == domain.InvalidPacked {
		return domain.InvalidPacked, false
	}
	return p, true
}

func twoDigits(s string) (int, bool) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

// EncodeChunkValue кодирует клетку в значение "flags,ground".
func EncodeChunkValue(c *domain.Cell) string {
	flags := int(c.Owner) & chunkOwnerMask
	if c.Revealed {
		flags |= chunkRevealed
	}
	if c.HasUnit {
		flags |= chunkUnit
	}
	if c.HasStructure {
		flags |= chunkStructure
	}
	if c.HasEffect {
		flags |= chunkEffect
	}
	return fmt.Sprintf("%d,%d", flags, c.Ground&chunkGroundMask)
}

// DecodeChunkValue разбирает значение "flags,ground".
func DecodeChunkValue(value string) (ChunkCell, error) {
	var cell ChunkCell

	flagsStr, groundStr, ok := strings.Cut(strings.TrimSpace(value), ",")
	if !ok {
		return cell, fmt.Errorf("chunk value %q: missing comma", value)
	}
	flags, err := strconv.Atoi(strings.TrimSpace(flagsStr))
	if err != nil {
		return cell, fmt.Errorf("chunk flags %q: %w", flagsStr, err)
	}
	ground, err := strconv.Atoi(strings.TrimSpace(groundStr))
	if err != nil {
		return cell, fmt.Errorf("chunk ground %q: %w", groundStr, err)
	}

	cell.Owner = domain.Faction(flags & chunkOwnerMask)
	cell.Revealed = flags&chunkRevealed != 0
	cell.HasUnit = flags&chunkUnit != 0
	cell.HasStructure = flags&chunkStructure != 0
	cell.HasEffect = flags&chunkEffect != 0
	cell.Ground = uint16(ground) & chunkGroundMask
	return cell, nil
}

// DecodeChunk разбирает все записи чанка. Неверные ключи и значения
// пропускаются с предупреждением. Результат упорядочен по клетке.
func DecodeChunk(entries map[string]string) []ChunkCell {
	chunkLogger := logger.Log.WithField("component", "scenario")

	cells := make([]ChunkCell, 0, len(entries))
	for key, value := range entries {
		p, ok := ParseChunkKey(key)
		if !ok {
			chunkLogger.WithField("key", key).Debug("Malformed chunk key ignored")
			continue
		}
		cell, err := DecodeChunkValue(value)
		if err != nil {
			chunkLogger.WithError(err).WithField("key", key).Warn("Malformed chunk value ignored")
			continue
		}
		cell.Pos = p
		cells = append(cells, cell)
	}

	sort.Slice(cells, func(i, j int) bool { return cells[i].Pos < cells[j].Pos })
	return cells
}

// EncodeChunk сохраняет клетки активной области, отличные от природного
// состояния: раскрытые, с владельцем или занятые.
func EncodeChunk(w *domain.WorldState) map[string]string {
	info := w.Scale.Info()
	entries := make(map[string]string)

	for y := info.MinY; y < info.MinY+info.SizeY; y++ {
		for x := info.MinX; x < info.MinX+info.SizeX; x++ {
			p := domain.PackXY(x, y)
			c := w.Cell(p)
			if !c.Revealed && c.Owner == 0 && !c.Occupied() {
				continue
			}
			entries[ChunkKey(p)] = EncodeChunkValue(c)
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "scenario",
		"cells":     len(entries),
	}).Debug("Chunk encoded")
	return entries
}
