package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Hu1906/TKB/internal/catalog"
	"github.com/Hu1906/TKB/internal/dto"
	"github.com/Hu1906/TKB/internal/models"
	"github.com/Hu1906/TKB/internal/service"
	"github.com/Hu1906/TKB/pkg/config"
	appErrors "github.com/Hu1906/TKB/pkg/errors"
	"github.com/Hu1906/TKB/pkg/logger"
	"github.com/Hu1906/TKB/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	catalogPath := flag.String("catalog", cfg.Catalog.SnapshotPath, "path to the catalog snapshot JSON")
	requestPath := flag.String("request", "-", "path to the generation request JSON (- for stdin)")
	flag.Parse()

	store, err := catalog.LoadSnapshot(*catalogPath)
	if err != nil {
		logr.Sugar().Fatalw("catalog load failed", "path", *catalogPath, "error", err)
	}

	req, err := readRequest(*requestPath)
	if err != nil {
		logr.Sugar().Fatalw("request decode failed", "path", *requestPath, "error", err)
	}

	svc := service.NewTimetableService(store, store, nil, logr, metrics.NewRecorder(), service.TimetableConfig{
		ResultLimit: cfg.Scheduler.ResultLimit,
	})

	resp, err := svc.Generate(context.Background(), req)
	if err != nil {
		appErr := appErrors.FromError(err)
		printJSON(&dto.GenerateResponse{Message: appErr.Message, Schedules: [][]models.Section{}})
		os.Exit(1)
	}
	printJSON(resp)
}

// readRequest accepts the full request object, a bare course-code array, or
// a bare course-to-section map, matching the shapes the generation API has
// historically taken.
func readRequest(path string) (dto.GenerateRequest, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return dto.GenerateRequest{}, err
	}

	var req dto.GenerateRequest
	if err := json.Unmarshal(data, &req); err == nil && (len(req.Courses) > 0 || len(req.Sections) > 0) {
		return req, nil
	}
	var codes []string
	if err := json.Unmarshal(data, &codes); err == nil {
		return dto.GenerateRequest{Courses: codes}, nil
	}
	var sections map[string][]string
	if err := json.Unmarshal(data, &sections); err == nil {
		return dto.GenerateRequest{Sections: sections}, nil
	}
	return dto.GenerateRequest{}, fmt.Errorf("request is neither a course list, a section map, nor a request object")
}

func printJSON(v interface{}) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(v)
}
