package storage

import (
	"bufio"
	"dune-core/internal/domain"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	MagicHeader string = `DWCL` // 4 байта
	Version1    uint32 = 1
)

// ChangeLogFileHeader - это точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type ChangeLogFileHeader struct {
	Magic      [4]byte // 4 байта
	Version    uint32  // 4 байта
	Seed       uint32  // 4 байта
	Scale      uint8   // 1 байт
	Reserved   [3]byte // 3 байта
	Timestamp  int64   // 8 байт
	FrameCount uint32  // 4 байта
}

// FrameHeader - заголовок каждого кадра.
type FrameHeader struct {
	Tick      uint32 // 4
	Flags     uint8  // 1, бит 0 - список переполнен
	Reserved  uint8  // 1
	TileCount uint16 // 2
}

// TileRecord - одна клетка кадра.
type TileRecord struct {
	Pos     uint16 // 2
	Ground  uint16 // 2
	Overlay uint16 // 2
	Owner   uint8  // 1
	Flags   uint8  // 1, бит 0 - раскрыта
}

const (
	frameSaturated uint8 = 1 << 0
	tileRevealed   uint8 = 1 << 0
)

type ChangeLogService struct {
	SaveDir string
}

func NewChangeLogService(dir string) *ChangeLogService {
	// Создаем папку если нет
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0755)
	}
	return &ChangeLogService{SaveDir: dir}
}

// Save пишет журнал в файл и возвращает путь к нему.
func (s *ChangeLogService) Save(log *domain.ChangeLog) (string, error) {
	filename := fmt.Sprintf("changes_%d_%s_%d.dwcl", log.Seed, log.Scale, log.Timestamp)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create change log: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := writeBinary(bw, log); err != nil {
		return "", err
	}
	if err := bw.Flush(); err != nil {
		return "", fmt.Errorf("flush change log: %w", err)
	}
	return path, nil
}

func writeBinary(w io.Writer, l *domain.ChangeLog) error {
	// 1. Подготавливаем и пишем ГЛОБАЛЬНЫЙ ЗАГОЛОВОК
	header := ChangeLogFileHeader{
		Version:    Version1,
		Seed:       l.Seed,
		Scale:      uint8(l.Scale),
		Timestamp:  l.Timestamp,
		FrameCount: uint32(len(l.Frames)),
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 2. Пишем кадры
	for _, frame := range l.Frames {
		if len(frame.Tiles) > 0xFFFF {
			return fmt.Errorf("frame %d too large: %d tiles", frame.Tick, len(frame.Tiles))
		}

		fh := FrameHeader{
			Tick:      frame.Tick,
			TileCount: uint16(len(frame.Tiles)),
		}
		if frame.Saturated {
			fh.Flags |= frameSaturated
		}
		if err := binary.Write(w, binary.LittleEndian, &fh); err != nil {
			return fmt.Errorf("failed to write frame %d: %w", frame.Tick, err)
		}

		// Клетки кадра пишем одним слайсом фиксированного размера
		records := make([]TileRecord, len(frame.Tiles))
		for i, t := range frame.Tiles {
			records[i] = TileRecord{
				Pos:     uint16(t.Pos),
				Ground:  t.Ground,
				Overlay: t.Overlay,
				Owner:   uint8(t.Owner),
			}
			if t.Revealed {
				records[i].Flags |= tileRevealed
			}
		}
		if err := binary.Write(w, binary.LittleEndian, records); err != nil {
			return fmt.Errorf("failed to write tiles of frame %d: %w", frame.Tick, err)
		}
	}

	return nil
}
