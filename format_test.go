package sqlfmt

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/uroborosql/sqlfmt/config"
)

// S1: a plain SELECT with no directives round-trips through the whole
// pipeline and is idempotent (§8 property "idempotence", scenario S1).
func TestFormatPlainSelect(t *testing.T) {
	cfg := config.Default()
	src := "select id,name from users where active = true and id > 10 order by id"

	out, err := Format(src, cfg)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(out, "SELECT"))
	assert.True(t, strings.HasSuffix(out, "\n"))

	out2, err := Format(out, cfg)
	assert.NoError(t, err)
	assert.Equal(t, out, out2)
}

// S2: a 2-way-SQL doma-style IF block is restored around its merged output.
func TestFormatDomaDirective(t *testing.T) {
	cfg := config.Default()
	src := "select id from users where 1 = 1 /*%if sf.isId */ and id = /*id*/1 /*%end*/"

	out, err := Format(src, cfg)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(out, "/*%if"))
	assert.True(t, strings.Contains(out, "/*%end*/"))
}

// S3: uroboroSQL-style directives use their own delimiter spelling.
func TestFormatUroboroDirective(t *testing.T) {
	cfg := config.Default()
	src := "select id from users where 1 = 1 /*IF sf.isId */ and id = /*id*/1 /*END*/"

	out, err := Format(src, cfg)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(out, "/*IF"))
	assert.True(t, strings.Contains(out, "/*END*/"))
}

// S4: bind-parameter coalescing keeps the comment immediately adjacent to
// its sample value with trim_bind_param off, and strips the value when on.
func TestFormatBindParamCoalescing(t *testing.T) {
	src := "select id from users where id = /*id*/1"

	cfg := config.Default()
	out, err := Format(src, cfg)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(out, "/*id*/1"))

	cfg2 := config.Default()
	cfg2.TrimBindParam = true
	out2, err := Format(src, cfg2)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(out2, "/*id*/"))
	assert.False(t, strings.Contains(out2, "/*id*/1"))
}

// S5: config rewrites compose: keyword casing, alias completion, and
// unify_not_equal all apply within one call.
func TestFormatConfigRewrites(t *testing.T) {
	cfg := config.Default()
	cfg.KeywordCase = config.CaseLower
	cfg.ComplementAlias = true
	cfg.UnifyNotEqual = true

	src := "SELECT u.id FROM users u WHERE u.id <> 1"
	out, err := Format(src, cfg)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(out, "select"))
	assert.True(t, strings.Contains(out, "u.id    as  id"))
	assert.True(t, strings.Contains(out, "!="))
	assert.False(t, strings.Contains(out, "<>"))
}

func TestFormatInvalidConfigRejected(t *testing.T) {
	cfg := config.Default()
	cfg.TabSize = 0

	_, err := Format("select 1", cfg)
	assert.Error(t, err)
}

func TestFormatParseErrorIsTyped(t *testing.T) {
	cfg := config.Default()
	_, err := Format("not a statement", cfg)
	assert.Error(t, err)
}
