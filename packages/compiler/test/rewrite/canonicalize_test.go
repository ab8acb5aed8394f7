package rewrite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wcc-go/packages/compiler/src/rewrite"
)

func parseSource(t *testing.T, content string) *rewrite.Source {
	t.Helper()
	s, err := rewrite.ParseSource(context.Background(), []byte(content), "test.ts")
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

// canonicalize runs Canonicalize on the argument of `p.then(<expr>)`
func canonicalize(t *testing.T, expr string) (string, bool) {
	t.Helper()
	s := parseSource(t, "class A {\n  m() {\n    p.then("+expr+");\n  }\n}\n")
	c := s.Classes()[0]
	sites := s.CallSites(c, s.Methods(c)[0])
	require.Len(t, sites, 1)
	slot, err := sites[0].Slot()
	require.NoError(t, err)
	return rewrite.Canonicalize(slot, rewrite.NewEditPlan(s.Content))
}

func TestCanonicalize(t *testing.T) {
	t.Run("should wrap a bare reference", func(t *testing.T) {
		text, changed := canonicalize(t, "handler")
		assert.True(t, changed)
		assert.Equal(t, "(...args) => { return handler(...args) }", text)
	})

	t.Run("should wrap a rebound reference verbatim", func(t *testing.T) {
		text, changed := canonicalize(t, "this.handler.bind(this)")
		assert.True(t, changed)
		assert.Equal(t, "(...args) => { return this.handler.bind(this)(...args) }", text)
	})

	t.Run("should give a concise arrow a block body", func(t *testing.T) {
		text, changed := canonicalize(t, "() => 42")
		assert.True(t, changed)
		assert.Equal(t, "() => { return 42 }", text)
	})

	t.Run("should keep the parameters of an arrow", func(t *testing.T) {
		text, _ := canonicalize(t, "async (res, i) => res.items[i]")
		assert.Equal(t, "async (res, i) => { return res.items[i] }", text)

		text, _ = canonicalize(t, "x => x.id")
		assert.Equal(t, "x => { return x.id }", text)
	})

	t.Run("should strip one layer of parentheses from the body", func(t *testing.T) {
		text, changed := canonicalize(t, "() => ({ life: 42 })")
		assert.True(t, changed)
		assert.Equal(t, "() => { return { life: 42 } }", text)
	})

	t.Run("should leave block bodies and functions alone", func(t *testing.T) {
		for _, expr := range []string{
			"() => { return 42 }",
			"function (x) { return x }",
			"this.handler",
		} {
			text, changed := canonicalize(t, expr)
			assert.False(t, changed, expr)
			assert.Equal(t, expr, text)
		}
	})

	t.Run("should be idempotent", func(t *testing.T) {
		for _, expr := range []string{"handler", "this.handler.bind(this)", "() => 42", "() => ({ a: 1 })"} {
			once, _ := canonicalize(t, expr)
			twice, changed := canonicalize(t, once)
			assert.False(t, changed, expr)
			assert.Equal(t, once, twice)
		}
	})
}

func TestInject(t *testing.T) {
	t.Run("should return the result of the callback", func(t *testing.T) {
		got := rewrite.Inject("cb", "r", nil)
		assert.Equal(t, "(...args) => { const r = (cb)(...args); return r }", got)
	})

	t.Run("should run the written statements after the callback", func(t *testing.T) {
		got := rewrite.Inject("cb", "r", func(w *rewrite.Writer) {
			w.WriteLine("a();").WriteLine("   ").WriteLine("b()")
		})
		assert.Equal(t, "(...args) => { const r = (cb)(...args); a(); b(); return r }", got)
	})

	t.Run("should call the collaborator by default", func(t *testing.T) {
		w := &rewrite.Writer{}
		rewrite.CallInjector("__wScheduler", "markForCheck")(nil)(w)
		assert.Equal(t, []string{"this.__wScheduler.markForCheck()"}, w.Statements())
	})
}
