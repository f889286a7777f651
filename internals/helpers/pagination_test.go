package helper

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveFor(t *testing.T, query string) Paging {
	t.Helper()

	app := fiber.New()
	var got Paging
	app.Get("/", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 10, 50)
		return c.SendStatus(fiber.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodGet, "/?"+query, nil)
	_, err := app.Test(req)
	require.NoError(t, err)
	return got
}

func TestResolvePaging(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  Paging
	}{
		{"defaults", "", Paging{Offset: 0, Limit: 10}},
		{"explicit", "offset=20&limit=25", Paging{Offset: 20, Limit: 25}},
		{"max limit", "limit=50", Paging{Offset: 0, Limit: 50}},
		{"above max falls back", "limit=51", Paging{Offset: 0, Limit: 10}},
		{"zero limit means empty page", "limit=0", Paging{Offset: 0, Limit: 0}},
		{"negative limit falls back", "limit=-3", Paging{Offset: 0, Limit: 10}},
		{"junk limit falls back", "limit=abc", Paging{Offset: 0, Limit: 10}},
		{"negative offset clamps", "offset=-5", Paging{Offset: 0, Limit: 10}},
		{"junk offset clamps", "offset=abc", Paging{Offset: 0, Limit: 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, resolveFor(t, tc.query))
		})
	}
}
