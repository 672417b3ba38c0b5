// Package categorize suggests spending categories for item names based on
// previously learned mappings. Item names come from hand-typed entries and
// ledger CSV imports, so the same product shows up as half-width katakana,
// full-width latin or with stray ideographic spaces; names are normalized
// before they are matched or stored.
package categorize

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/width"
)

type Repository interface {
	FindCategory(ctx context.Context, itemName string) (string, error)
	CreateMapping(ctx context.Context, namePattern, category string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest tries to find a category for the given item name, based on
// previously learned mappings. Returns empty string if no match found.
func (s *Service) Suggest(ctx context.Context, itemName string) (string, error) {
	return s.repo.FindCategory(ctx, Normalize(itemName))
}

// Learn remembers a new mapping between an item name pattern and a category.
func (s *Service) Learn(ctx context.Context, namePattern, category string) error {
	pattern := Normalize(namePattern)
	if pattern == "" {
		return fmt.Errorf("name pattern %q is empty after normalization", namePattern)
	}

	return s.repo.CreateMapping(ctx, pattern, strings.TrimSpace(category))
}

// Normalize canonicalizes an item name: width variants are folded
// (half-width katakana to full-width, full-width latin and ideographic
// spaces to ASCII), latin letters are lowercased and surrounding
// whitespace is trimmed. Mappings are stored and matched in this form.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(width.Fold.String(name)))
}
