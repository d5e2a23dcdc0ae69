package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// whereContains adds a case-insensitive substring match of keyword against
// any of columns. LIKE wildcards in keyword are matched literally.
func whereContains(db *gorm.DB, keyword string, columns ...string) *gorm.DB {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(keyword)) + "%"

	clauses := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		clauses = append(clauses, fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, col))
		args = append(args, pattern)
	}
	return db.Where(strings.Join(clauses, " OR "), args...)
}
