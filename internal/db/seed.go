package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dtnitsch/meta-auditor/models"
	dbpkg "github.com/dtnitsch/meta-auditor/pkg/db"
	"gopkg.in/yaml.v3"
)

// Seed is the YAML layout accepted by the seed command.
type Seed struct {
	PostTypes []SeedType `yaml:"post_types"`
	Posts     []SeedPost `yaml:"posts"`
}

type SeedType struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
}

type SeedPost struct {
	Title     string    `yaml:"title"`
	Type      string    `yaml:"type"`
	Status    string    `yaml:"status"`
	URL       string    `yaml:"url"`
	Modified  time.Time `yaml:"modified"`
	MetaTitle string    `yaml:"meta_title"`
	MetaDesc  string    `yaml:"meta_desc"`
	FocusKW   string    `yaml:"focus_kw"`
}

// LoadSeed reads a seed file.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &seed, nil
}

// Apply registers the seed's types and writes its posts. Posts with a URL
// replace the record already stored for that URL. Returns the number of
// posts written.
func (s *Seed) Apply(ctx context.Context, database *dbpkg.DB) (int, error) {
	for _, t := range s.PostTypes {
		label := t.Label
		if label == "" {
			label = t.Name
		}
		if err := database.RegisterPostType(ctx, models.PostType{Name: t.Name, Label: label, Public: true}); err != nil {
			return 0, err
		}
	}

	for i, p := range s.Posts {
		if p.Type == "" {
			return i, fmt.Errorf("post %d (%q) has no type", i, p.Title)
		}
		post := dbpkg.Post{
			Title:     p.Title,
			Type:      p.Type,
			Status:    p.Status,
			URL:       p.URL,
			Modified:  p.Modified,
			MetaTitle: p.MetaTitle,
			MetaDesc:  p.MetaDesc,
			FocusKW:   p.FocusKW,
		}
		var err error
		if post.URL != "" {
			_, err = database.UpsertPostByURL(ctx, post)
		} else {
			_, err = database.InsertPost(ctx, post)
		}
		if err != nil {
			return i, err
		}
	}
	return len(s.Posts), nil
}
