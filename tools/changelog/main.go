package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"dune-core/internal/domain"
	"dune-core/internal/infrastructure/storage"
	"dune-core/pkg/logger"
	"dune-core/pkg/mapgen"
)

func main() {
	logger.Init()

	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "info":
		log := load()
		fmt.Printf("seed:    %d\n", log.Seed)
		fmt.Printf("scale:   %s\n", log.Scale)
		fmt.Printf("written: %s\n", time.Unix(log.Timestamp, 0).Format(time.RFC3339))
		fmt.Printf("frames:  %d\n", len(log.Frames))
		if n := len(log.Frames); n > 0 {
			fmt.Printf("ticks:   %d..%d\n", log.Frames[0].Tick, log.Frames[n-1].Tick)
		}
	case "frames":
		for _, f := range load().Frames {
			saturated := ""
			if f.Saturated {
				saturated = " saturated"
			}
			fmt.Printf("tick %6d: %4d tiles%s\n", f.Tick, len(f.Tiles), saturated)
		}
	case "chunk":
		// Карта после всех кадров в формате сценария (payload.chunk для INIT)
		log := load()
		w := mapgen.NewWorld(log.Seed, log.Scale, 1)
		for _, f := range log.Frames {
			w.ApplyFrame(f)
		}
		out, err := json.MarshalIndent(storage.EncodeChunk(w), "", "  ")
		if err != nil {
			fail(err)
		}
		fmt.Println(string(out))
	case "format":
		if len(os.Args) < 3 {
			fmt.Println("Usage: changelog format <unix_timestamp>")
			return
		}
		ts, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			fmt.Printf("Invalid timestamp: %v\n", err)
			return
		}
		fmt.Println(time.Unix(ts, 0).Format(time.RFC3339))
	default:
		printHelp()
	}
}

func load() *domain.ChangeLog {
	if len(os.Args) < 3 {
		fmt.Printf("Usage: changelog %s <file.dwcl>\n", os.Args[1])
		os.Exit(2)
	}
	path := os.Args[2]
	log, err := storage.NewChangeLogService(filepath.Dir(path)).Load(path)
	if err != nil {
		fail(err)
	}
	return log
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func printHelp() {
	fmt.Println(`Change log utility - просмотр журналов изменений карты (.dwcl)
Commands:
  info <file>            - заголовок журнала: зерно, масштаб, число кадров
  frames <file>          - список кадров по тикам
  chunk <file>           - итоговая карта в формате сценария (JSON)
  format <timestamp>     - преобразовать Unix время в читаемый формат`)
}
