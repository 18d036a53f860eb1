package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/setidure/blog-api/models"
)

var (
	// slugInvalid matches everything that may not appear in a slug candidate
	slugInvalid = regexp.MustCompile(`[^a-z0-9 -]+`)
	// spaceRun matches runs of whitespace between words
	spaceRun = regexp.MustCompile(`\s+`)
	// hyphenRun matches multiple consecutive hyphens
	hyphenRun = regexp.MustCompile(`-{2,}`)
)

// GenerateSlug converts a post title into a URL-safe slug: accents are
// decomposed and dropped, the rest is lower-cased, everything outside
// [a-z0-9 -] is stripped, whitespace runs become single hyphens, hyphen runs
// collapse, and leading/trailing hyphens are trimmed.
func GenerateSlug(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, title)

	result = strings.ToLower(result)
	result = slugInvalid.ReplaceAllString(result, "")
	result = spaceRun.ReplaceAllString(result, "-")
	result = hyphenRun.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}

// DisambiguateSlug resolves a collision by suffixing the candidate with the
// current timestamp in milliseconds. excludeID is the record whose own slug
// must not count as a collision (0 on create: ids start at 1).
func DisambiguateSlug(candidate string, posts []models.BlogPost, excludeID int, now time.Time) string {
	if !slugInUse(candidate, posts, excludeID) {
		return candidate
	}
	return candidate + "-" + strconv.FormatInt(now.UnixMilli(), 10)
}

func slugInUse(slug string, posts []models.BlogPost, excludeID int) bool {
	for _, post := range posts {
		if post.ID != excludeID && post.Slug == slug {
			return true
		}
	}
	return false
}

// wordsPerMinute is the reading speed assumed by CalculateReadTime.
const wordsPerMinute = 200

// CalculateReadTime estimates how long a post takes to read, rounding up to
// the next whole minute with a floor of one minute.
func CalculateReadTime(content string) string {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
