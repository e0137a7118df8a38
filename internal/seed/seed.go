// Package seed loads the hotel catalogue from a YAML file at startup.
//
// File format:
//
//	hotels:
//	  - hotel_id: "1"
//	    name: Hilton
//	    location: New York
//	    total_rooms: 5
package seed

import (
	"context"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

type seedFile struct {
	Hotels []seedHotel `yaml:"hotels"`
}

type seedHotel struct {
	HotelID    string `yaml:"hotel_id"`
	Name       string `yaml:"name"`
	Location   string `yaml:"location"`
	TotalRooms int    `yaml:"total_rooms"`
}

// Upserter is the part of the hotel repository seeding needs.
type Upserter interface {
	Upsert(ctx context.Context, h *model.Hotel) error
}

// Load parses path and validates every hotel through model.NewHotel.  Ids
// must be unique within the file.
func Load(path string) ([]*model.Hotel, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}
	var f seedFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("seed: parse %s: %w", path, err)
	}

	seen := make(map[string]bool, len(f.Hotels))
	out := make([]*model.Hotel, 0, len(f.Hotels))
	for i, sh := range f.Hotels {
		h, err := model.NewHotel(sh.HotelID, sh.Name, sh.Location, sh.TotalRooms)
		if err != nil {
			return nil, fmt.Errorf("seed: hotel #%d: %w", i+1, err)
		}
		if seen[h.ID] {
			return nil, fmt.Errorf("seed: hotel #%d: duplicate hotel_id %q", i+1, h.ID)
		}
		seen[h.ID] = true
		out = append(out, h)
	}
	return out, nil
}

// Apply upserts hotels in file order and stops at the first failure.
func Apply(ctx context.Context, repo Upserter, hotels []*model.Hotel) error {
	for _, h := range hotels {
		if err := repo.Upsert(ctx, h); err != nil {
			return fmt.Errorf("seed: upsert %s: %w", h.ID, err)
		}
	}
	log.Printf("seed: %d hotels upserted", len(hotels))
	return nil
}

// Run loads path and applies it.
func Run(ctx context.Context, repo Upserter, path string) error {
	hotels, err := Load(path)
	if err != nil {
		return err
	}
	return Apply(ctx, repo, hotels)
}
