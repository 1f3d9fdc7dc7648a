package table

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postedAt = "投稿日時"

func tweets(rows ...[]string) *Table {
	t := New("ID", postedAt, "text")
	for _, r := range rows {
		t.Append(r...)
	}
	return t
}

func column(t *Table, name string) []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[name]
	}
	return out
}

var utcParser = TimestampParser(time.UTC)

// --- Concat ---

func TestConcat_PreservesSetAndRowOrder(t *testing.T) {
	a := tweets([]string{"1", "2024-01-01", "a"}, []string{"2", "2024-01-02", "b"})
	b := tweets([]string{"3", "2024-01-03", "c"})

	got := Concat(a, b)

	assert.Equal(t, []string{"ID", postedAt, "text"}, got.Columns)
	assert.Equal(t, []string{"1", "2", "3"}, column(got, "ID"))
}

func TestConcat_SchemaUnionInFirstAppearanceOrder(t *testing.T) {
	a := New("ID", "text")
	a.Append("1", "a")
	b := New("likes", "ID", "text", "retweets")
	b.Append("5", "2", "b", "0")

	got := Concat(a, b)

	want := []string{"ID", "text", "likes", "retweets"}
	if diff := cmp.Diff(want, got.Columns); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
	_, present := got.Rows[0]["likes"]
	assert.False(t, present, "column missing from the first set should be absent")
	assert.Equal(t, []string{"1", "a", "", ""}, got.Values(got.Rows[0]))
	assert.Equal(t, []string{"2", "b", "5", "0"}, got.Values(got.Rows[1]))
}

func TestConcat_SkipsNil(t *testing.T) {
	got := Concat(nil, tweets([]string{"1", "2024-01-01", "a"}), nil)
	assert.Equal(t, 1, got.Len())
}

// --- DedupBy ---

func TestDedupBy_FirstOccurrenceWins(t *testing.T) {
	older := tweets([]string{"42", "2024-01-01", "from first file"})
	newer := tweets([]string{"42", "2024-01-01", "from second file"}, []string{"7", "2024-01-02", "x"})

	got, removed := DedupBy(Concat(older, newer), "ID")

	assert.Equal(t, 1, removed)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, "42", got.Rows[0]["ID"])
	assert.Equal(t, "from first file", got.Rows[0]["text"])
}

func TestDedupBy_Idempotent(t *testing.T) {
	f := tweets(
		[]string{"1", "2024-01-01", "a"},
		[]string{"2", "2024-01-02", "b"},
		[]string{"3", "2024-01-03", "c"},
	)
	once, _ := DedupBy(Concat(f), "ID")
	twice, removed := DedupBy(Concat(f, f), "ID")

	assert.Equal(t, once.Len(), twice.Len())
	assert.Equal(t, f.Len(), removed)
}

func TestDedupBy_RowAccounting(t *testing.T) {
	a := tweets([]string{"1", "", ""}, []string{"2", "", ""}, []string{"1", "", ""})
	b := tweets([]string{"2", "", ""}, []string{"3", "", ""})
	merged := Concat(a, b)

	got, removed := DedupBy(merged, "ID")

	assert.Equal(t, merged.Len()-removed, got.Len())
	assert.Equal(t, []string{"1", "2", "3"}, column(got, "ID"))
}

func TestDedupBy_EmptyIDsAreKept(t *testing.T) {
	merged := tweets([]string{"", "", "a"}, []string{"", "", "b"}, []string{"1", "", "c"})
	merged.Rows = append(merged.Rows, Record{"text": "no id at all"})

	got, removed := DedupBy(merged, "ID")

	assert.Equal(t, 0, removed)
	assert.Equal(t, 4, got.Len())
}

func TestDedupBy_MissingColumnIsNoop(t *testing.T) {
	in := New("text")
	in.Append("a")
	in.Append("a")

	got, removed := DedupBy(in, "ID")

	assert.Same(t, in, got)
	assert.Equal(t, 0, removed)
}

// --- SortByTime ---

func TestSortByTime_Descending(t *testing.T) {
	in := tweets(
		[]string{"1", "2024-01-01", "a"},
		[]string{"3", "2024-03-01T08:00:00.000Z", "c"},
		[]string{"2", "2024-01-02 10:30:00", "b"},
	)

	got, stats, err := SortByTime(in, postedAt, utcParser, false)

	require.NoError(t, err)
	assert.Equal(t, SortStats{}, stats)
	assert.Equal(t, []string{"3", "2", "1"}, column(got, "ID"))
}

func TestSortByTime_StableForEqualTimestamps(t *testing.T) {
	in := tweets(
		[]string{"a", "2024-01-01", ""},
		[]string{"b", "2024-01-02", ""},
		[]string{"c", "2024-01-01", ""},
		[]string{"d", "2024-01-02", ""},
		[]string{"e", "2024-01-01T00:00:00Z", ""},
	)

	got, _, err := SortByTime(in, postedAt, utcParser, false)

	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, column(got, "ID"))
}

func TestSortByTime_OrderInvariant(t *testing.T) {
	in := tweets(
		[]string{"1", "2023-12-31T23:59:59Z", ""},
		[]string{"2", "2024-06-01", ""},
		[]string{"3", "2024-01-01T00:00:01Z", ""},
		[]string{"4", "2022-02-02", ""},
	)

	got, _, err := SortByTime(in, postedAt, utcParser, false)
	require.NoError(t, err)

	for i := 1; i < got.Len(); i++ {
		prev, err := ParseTimestamp(got.Rows[i-1][postedAt], time.UTC)
		require.NoError(t, err)
		cur, err := ParseTimestamp(got.Rows[i][postedAt], time.UTC)
		require.NoError(t, err)
		assert.True(t, prev.After(cur), "%s should come before %s", prev, cur)
	}
}

func TestSortByTime_EmptyValuesSortLast(t *testing.T) {
	in := tweets(
		[]string{"1", "", ""},
		[]string{"2", "2024-01-01", ""},
		[]string{"3", "  ", ""},
	)
	in.Rows = append(in.Rows, Record{"ID": "4"})

	got, stats, err := SortByTime(in, postedAt, utcParser, false)

	require.NoError(t, err)
	assert.Equal(t, 3, stats.Empty)
	assert.Equal(t, []string{"2", "1", "3", "4"}, column(got, "ID"))
}

func TestSortByTime_UnparseableFailsByDefault(t *testing.T) {
	in := tweets([]string{"1", "2024-01-01", ""}, []string{"2", "yesterday-ish", ""})

	got, _, err := SortByTime(in, postedAt, utcParser, false)

	assert.Nil(t, got)
	var tsErr *TimestampError
	require.True(t, errors.As(err, &tsErr))
	assert.Equal(t, 1, tsErr.Row)
	assert.Equal(t, "yesterday-ish", tsErr.Value)
	assert.Contains(t, err.Error(), "merged row 2:")
}

func TestSortByTime_UnparseableLast(t *testing.T) {
	in := tweets(
		[]string{"1", "garbage", ""},
		[]string{"2", "2024-01-01", ""},
		[]string{"3", "", ""},
		[]string{"4", "more garbage", ""},
		[]string{"5", "2024-02-01", ""},
	)

	got, stats, err := SortByTime(in, postedAt, utcParser, true)

	require.NoError(t, err)
	assert.Equal(t, SortStats{Empty: 1, Unparsed: 2}, stats)
	assert.Equal(t, []string{"5", "2", "3", "1", "4"}, column(got, "ID"))
}

func TestSortByTime_MissingColumnIsNoop(t *testing.T) {
	in := New("ID", "text")
	in.Append("1", "a")

	got, _, err := SortByTime(in, postedAt, utcParser, false)

	require.NoError(t, err)
	assert.Same(t, in, got)
}

func TestParseTimestamp_NaiveUsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)

	naive, err := ParseTimestamp("2024-01-01 09:00:00", tokyo)
	require.NoError(t, err)
	zoned, err := ParseTimestamp("2024-01-01T00:00:00Z", tokyo)
	require.NoError(t, err)

	assert.True(t, naive.Equal(zoned))
}
