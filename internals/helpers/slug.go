package helper

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
)

// Slugify lowercases, strips diacritics and keeps [a-z0-9-]. Falls back to "item".
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 100
	}
	s = strings.ToLower(strings.TrimSpace(s))

	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		buf = append(buf, r)
	}
	s = string(buf)

	s = reNonAlnum.ReplaceAllString(s, "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if utf8.RuneCountInString(s) > maxLen {
		s = strings.Trim(string([]rune(s)[:maxLen]), "-")
	}
	if s == "" {
		s = "item"
	}
	return s
}

// CategorySlug derives the slug of a property category. Subcategories carry their segment so the
// same name can exist under rent and commercial.
func CategorySlug(name, segment string, isChild bool) string {
	if isChild && strings.TrimSpace(segment) != "" {
		return Slugify(name+" "+segment, 120)
	}
	return Slugify(name, 120)
}

// SlugTakenCI reports whether table.column already holds slug, ignoring case.
func SlugTakenCI(ctx context.Context, db *gorm.DB, table, column, slug string, scopeFn func(*gorm.DB) *gorm.DB) (bool, error) {
	q := db.WithContext(ctx).Table(table)
	if scopeFn != nil {
		q = scopeFn(q)
	}
	var count int64
	if err := q.Where(fmt.Sprintf("LOWER(%s) = ?", column), strings.ToLower(slug)).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// EnsureUniqueSlugCI appends -2, -3, ... until table.column has no case-insensitive match.
// scopeFn may narrow the check (e.g. exclude the row being updated).
func EnsureUniqueSlugCI(
	ctx context.Context,
	db *gorm.DB,
	table string,
	column string,
	baseSlug string,
	scopeFn func(*gorm.DB) *gorm.DB,
	maxLen int,
) (string, error) {
	if maxLen <= 0 {
		maxLen = 100
	}
	slug := baseSlug

	for i := 0; i < 50; i++ {
		taken, err := SlugTakenCI(ctx, db, table, column, slug, scopeFn)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		suffix := fmt.Sprintf("-%d", i+2)
		slug = trimForSuffix(baseSlug, suffix, maxLen) + suffix
	}
	return "", fmt.Errorf("could not find a free slug for %q", baseSlug)
}

func trimForSuffix(base, suffix string, maxLen int) string {
	keep := maxLen - len(suffix)
	if keep < 1 {
		keep = 1
	}
	rs := []rune(base)
	if len(rs) > keep {
		rs = rs[:keep]
	}
	out := strings.Trim(string(rs), "-")
	if out == "" {
		out = "x"
	}
	return out
}
