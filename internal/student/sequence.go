package student

import (
	"context"
	"fmt"

	"student-registry/internal/db"

	"github.com/uptrace/bun"
)

// Counter holds the last issued integer for one named sequence.
type Counter struct {
	bun.BaseModel `bun:"table:counters"`

	Name string `bun:"name,pk"`
	Seq  int64  `bun:"seq,notnull,default:0"`
}

const (
	counterName = "student"
	codePrefix  = "STU_"
)

// CodeGenerator issues strictly increasing student codes. Codes are unique
// and monotonic but not contiguous: a failure between issuing a code and
// persisting the record strands it, and the counter is not rolled back.
type CodeGenerator interface {
	NextCode(ctx context.Context) (string, error)
}

type codeGenerator struct {
	session *db.Session
}

func NewCodeGenerator(session *db.Session) CodeGenerator {
	return &codeGenerator{session: session}
}

// NextCode increments the counter and reads the result in a single atomic
// statement, so concurrent callers never receive the same integer. The
// counter row is created on first use (first code is STU_0001).
func (g *codeGenerator) NextCode(ctx context.Context) (string, error) {
	bdb, err := g.session.DB(ctx)
	if err != nil {
		return "", err
	}

	counter := &Counter{Name: counterName, Seq: 1}
	_, err = bdb.NewInsert().
		Model(counter).
		On("CONFLICT (name) DO UPDATE").
		Set("seq = counters.seq + 1").
		Returning("seq").
		Exec(ctx)
	if err != nil {
		return "", err
	}

	return FormatCode(counter.Seq), nil
}

// FormatCode renders a sequence value as a student code: the prefix plus the
// integer zero-padded to four digits. Larger values keep all their digits.
func FormatCode(seq int64) string {
	return fmt.Sprintf("%s%04d", codePrefix, seq)
}
