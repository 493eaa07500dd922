package storage

import (
	"bufio"
	"dune-core/internal/domain"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

func (s *ChangeLogService) Load(path string) (*domain.ChangeLog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open change log: %w", err)
	}
	defer f.Close()

	return readBinary(bufio.NewReader(f))
}

func readBinary(r io.Reader) (*domain.ChangeLog, error) {
	// 1. Читаем заголовок целиком
	var header ChangeLogFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("invalid magic")
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}
	scale := domain.MapScale(header.Scale)
	if !scale.Valid() {
		return nil, fmt.Errorf("invalid map scale: %d", header.Scale)
	}

	log := &domain.ChangeLog{
		Seed:      header.Seed,
		Scale:     scale,
		Timestamp: header.Timestamp,
		Frames:    make([]domain.ChangeFrame, 0, header.FrameCount),
	}

	// 2. Читаем кадры
	for i := 0; i < int(header.FrameCount); i++ {
		var fh FrameHeader
		if err := binary.Read(r, binary.LittleEndian, &fh); err != nil {
			return nil, fmt.Errorf("failed to read frame %d: %w", i, err)
		}

		records := make([]TileRecord, fh.TileCount)
		if err := binary.Read(r, binary.LittleEndian, records); err != nil {
			return nil, fmt.Errorf("failed to read tiles of frame %d: %w", i, err)
		}

		frame := domain.ChangeFrame{
			Tick:      fh.Tick,
			Saturated: fh.Flags&frameSaturated != 0,
			Tiles:     make([]domain.TileChange, len(records)),
		}
		for j, rec := range records {
			frame.Tiles[j] = domain.TileChange{
				Pos:      domain.PackedCoordinate(rec.Pos),
				Ground:   rec.Ground,
				Overlay:  rec.Overlay,
				Owner:    domain.Faction(rec.Owner),
				Revealed: rec.Flags&tileRevealed != 0,
			}
		}
		log.Frames = append(log.Frames, frame)
	}

	return log, nil
}
