package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Paging struct {
	Offset int
	Limit  int
}

// ResolvePaging reads ?offset= and ?limit= and normalises them the same way
// across every list endpoint: negative offsets become 0 and limits outside
// 0..maxLimit fall back to defaultLimit. Limit 0 is honoured and returns an
// empty page.
func ResolvePaging(c *fiber.Ctx, defaultLimit, maxLimit int) Paging {
	offsetStr := strings.TrimSpace(c.Query("offset", "0"))
	limitStr := strings.TrimSpace(c.Query("limit", strconv.Itoa(defaultLimit)))

	offset, _ := strconv.Atoi(offsetStr)
	if offset < 0 {
		offset = 0
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 0 || limit > maxLimit {
		limit = defaultLimit
	}

	return Paging{Offset: offset, Limit: limit}
}
