package engine

import (
	"fmt"
	"time"

	"dune-core/internal/domain"
	"dune-core/pkg/logger"
	"dune-core/pkg/mapgen"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/sirupsen/logrus"
)

const previewTTL = 10 * time.Minute

// previewGlyphs - символ для каждой категории местности.
var previewGlyphs = [domain.LandscapeCount]byte{
	domain.LandscapeSand:          '.',
	domain.LandscapeRock:          '#',
	domain.LandscapeDune:          '~',
	domain.LandscapeMountain:      '^',
	domain.LandscapeSpice:         's',
	domain.LandscapeThickSpice:    'S',
	domain.LandscapeConcrete:      '=',
	domain.LandscapeWall:          'W',
	domain.LandscapeStructure:     'B',
	domain.LandscapeDestroyedWall: 'w',
	domain.LandscapeBloom:         '*',
}

// PreviewMap - карта для seed без тумана, по строке на ряд активной области.
type PreviewMap struct {
	Seed   uint32         `json:"seed"`
	Scale  string         `json:"scale"`
	Rows   []string       `json:"rows"`
	Counts map[string]int `json:"counts"`
}

// PreviewCache генерирует карты в отдельном мире и кэширует их по (seed, scale).
// Живой мир симуляции не затрагивается, поэтому кэш можно звать из любой горутины.
type PreviewCache struct {
	cache   *ristretto.Cache[string, *PreviewMap]
	primary domain.Faction
}

func NewPreviewCache(primary domain.Faction) (*PreviewCache, error) {
	cache, err := ristretto.NewCache[string, *PreviewMap](&ristretto.Config[string, *PreviewMap]{
		NumCounters: 1000,
		MaxCost:     64 * domain.MapCells, // стоимость карты - число клеток
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("preview cache: %w", err)
	}
	return &PreviewCache{cache: cache, primary: primary}, nil
}

func previewKey(seed uint32, scale domain.MapScale) string {
	return fmt.Sprintf("%d|%s", seed, scale)
}

// Get возвращает превью из кэша или генерирует его. cached сообщает о попадании.
func (p *PreviewCache) Get(seed uint32, scale domain.MapScale) (preview *PreviewMap, cached bool) {
	key := previewKey(seed, scale)

	p.cache.Wait()
	if m, ok := p.cache.Get(key); ok {
		return m, true
	}

	m := renderPreview(mapgen.NewWorld(seed, scale, p.primary))
	info := scale.Info()
	p.cache.SetWithTTL(key, m, int64(info.SizeX*info.SizeY), previewTTL)
	p.cache.Wait()

	logger.Log.WithFields(logrus.Fields{
		"component": "preview",
		"seed":      seed,
		"scale":     scale.String(),
	}).Debug("Preview generated")
	return m, false
}

// Close освобождает горутины кэша.
func (p *PreviewCache) Close() {
	p.cache.Close()
}

func renderPreview(w *domain.WorldState) *PreviewMap {
	info := w.Scale.Info()
	m := &PreviewMap{
		Seed:   w.Seed,
		Scale:  w.Scale.String(),
		Rows:   make([]string, 0, info.SizeY),
		Counts: make(map[string]int),
	}

	row := make([]byte, info.SizeX)
	for y := info.MinY; y < info.MinY+info.SizeY; y++ {
		for x := info.MinX; x < info.MinX+info.SizeX; x++ {
			// Туман не учитывается: классифицируем только землю
			c := w.Cell(domain.PackXY(x, y))
			l := domain.ClassifySprite(c.Ground, 0, c.HasStructure)
			row[x-info.MinX] = previewGlyphs[l]
			m.Counts[l.String()]++
		}
		m.Rows = append(m.Rows, string(row))
	}
	return m
}
