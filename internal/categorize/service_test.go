package categorize_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oizumi98/kaimono-api/internal/categorize"
)

type stubRepo struct {
	findName    string
	category    string
	gotPattern  string
	gotCategory string
}

func (s *stubRepo) FindCategory(_ context.Context, itemName string) (string, error) {
	s.findName = itemName
	return s.category, nil
}

func (s *stubRepo) CreateMapping(_ context.Context, namePattern, category string) error {
	s.gotPattern = namePattern
	s.gotCategory = category

	return nil
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "half-width katakana", in: "ｱｲｽ", want: "アイス"},
		{name: "full-width latin", in: "Ｃｏｆｆｅｅ", want: "coffee"},
		{name: "ideographic space trimmed", in: "　アイス　", want: "アイス"},
		{name: "mixed case", in: " AirPods ", want: "airpods"},
		{name: "already canonical", in: "コーヒー", want: "コーヒー"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, categorize.Normalize(tt.in))
		})
	}
}

func TestSuggest_NormalizesLookup(t *testing.T) {
	repo := &stubRepo{category: "food"}
	svc := categorize.NewService(repo)

	got, err := svc.Suggest(context.Background(), "　ｱｲｽ ")
	require.NoError(t, err)
	assert.Equal(t, "food", got)
	assert.Equal(t, "アイス", repo.findName)
}

func TestLearn_NormalizesPattern(t *testing.T) {
	repo := &stubRepo{}
	svc := categorize.NewService(repo)

	err := svc.Learn(context.Background(), " Ｓｗｉｔｃｈ ", " games ")
	require.NoError(t, err)
	assert.Equal(t, "switch", repo.gotPattern)
	assert.Equal(t, "games", repo.gotCategory)
}

func TestLearn_EmptyAfterNormalization(t *testing.T) {
	repo := &stubRepo{}
	svc := categorize.NewService(repo)

	err := svc.Learn(context.Background(), "　 　", "food")
	require.Error(t, err)
	assert.Empty(t, repo.gotPattern)
}
