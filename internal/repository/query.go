package repository

import (
	"strconv"
	"strings"

	"github.com/AnshRaj112/laporan-backend/internal/models"
	"github.com/google/uuid"
)

// whereBuilder accumulates predicates and their positional arguments.
// Values never enter the SQL text; only $n placeholders do.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(w.args))))
}

func (w *whereBuilder) String() string {
	return "WHERE " + strings.Join(w.conds, " AND ")
}

// nextPlaceholder returns the placeholder for an argument appended after the
// WHERE arguments (LIMIT/OFFSET).
func (w *whereBuilder) nextPlaceholder(arg any) string {
	w.args = append(w.args, arg)
	return "$" + strconv.Itoa(len(w.args))
}

func entryWhere(ownerID uuid.UUID, f models.EntryFilter) *whereBuilder {
	w := &whereBuilder{}
	w.add("user_id = ?", ownerID)
	if f.StartDate != nil {
		w.add("tanggal >= ?", f.StartDate.Format(models.DateLayout))
	}
	if f.EndDate != nil {
		w.add("tanggal <= ?", f.EndDate.Format(models.DateLayout))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		w.add(`nama_kegiatan ILIKE '%' || ? || '%' ESCAPE '\'`, escapeLike(s))
	}
	return w
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in user input match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
