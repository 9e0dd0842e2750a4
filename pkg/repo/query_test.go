package repo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWhere(t *testing.T) {
	w := NewWhere(Dollar).Eq("deptno", 10).Eq("mgr", 7839)
	require.Equal(t, "WHERE deptno = $1 AND mgr = $2", w.String())
	require.Equal(t, []any{10, 7839}, w.Args())

	require.Empty(t, NewWhere(Question).String())
	require.Equal(t, "WHERE deptno = ?", NewWhere(Question).Eq("deptno", 1).String())
}

func TestWhere_NotEq(t *testing.T) {
	w := NewWhere(Dollar).Eq("mgr", 7).NotEq("empno", 7)
	require.Equal(t, "WHERE mgr = $1 AND empno <> $2", w.String())
	require.Equal(t, []any{7, 7}, w.Args())
}

func TestJoinAndExists(t *testing.T) {
	q := Join("SELECT 1 FROM emp", "", "WHERE mgr = $1", "LIMIT 1")
	require.Equal(t, "SELECT 1 FROM emp WHERE mgr = $1 LIMIT 1", q)
	require.Equal(t, "SELECT EXISTS(SELECT 1 FROM emp)", Exists("SELECT 1 FROM emp"))
}
