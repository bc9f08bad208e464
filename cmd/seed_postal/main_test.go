package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

const kenAllSample = `01101,"060  ","0600000","HOKKAIDO","SAPPORO","IKANI","北海道","札幌市中央区","以下に掲載がない場合",0,0,0,0,0,0
13221,"204  ","2040023","TOKYO","KIYOSE","TAKEOKA","東京都","清瀬市","竹丘",0,0,1,0,0,0
13221,"204  ","2040023","TOKYO","KIYOSE","TAKEOKA","東京都","清瀬市","竹丘",0,0,1,0,0,0
01224,"066  ","0660005","HOKKAIDO","CHITOSE","KYOWA","北海道","千歳市","協和（８８、２７１、",0,0,0,0,0,0
01224,"066  ","0660005","HOKKAIDO","CHITOSE","KYOWA","北海道","千歳市","３４３、４０４）",0,0,0,0,0,0
13113,"150  ","1500043","TOKYO","SHIBUYA","DOGENZAKA","東京都","渋谷区","道玄坂（次のビルを除く）",0,0,1,0,0,0
`

func shiftJIS(t *testing.T, s string) []byte {
	t.Helper()
	out, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(s))
	require.NoError(t, err)
	return out
}

func TestParseKenAll_DesdeShiftJIS(t *testing.T) {
	r := transform.NewReader(bytes.NewReader(shiftJIS(t, kenAllSample)), japanese.ShiftJIS.NewDecoder())
	areas, err := parseKenAll(r)
	require.NoError(t, err)

	assert.Equal(t, []area{
		{"0600000", "北海道", "札幌市中央区", ""},
		{"2040023", "東京都", "清瀬市", "竹丘"},
		{"0660005", "北海道", "千歳市", "協和"},
		{"1500043", "東京都", "渋谷区", "道玄坂"},
	}, areas)
}

func TestParseKenAll_ParentesisSinCerrarAlFinal(t *testing.T) {
	in := `01224,"066  ","0660005","H","C","K","北海道","千歳市","協和（８８、",0,0,0,0,0,0` + "\n"
	areas, err := parseKenAll(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Equal(t, "協和", areas[0].town)
}

func TestParseKenAll_ColumnasInsuficientes(t *testing.T) {
	_, err := parseKenAll(strings.NewReader("1,2,3\n"))
	assert.ErrorContains(t, err, "línea 1")
}

func TestCleanTown(t *testing.T) {
	cases := map[string]string{
		"以下に掲載がない場合":    "",
		"札幌市の次に番地がくる場合": "",
		"御蔵島村一円":        "",
		"竹丘":            "竹丘",
		"大通西（１～１９丁目）":   "大通西",
		" 道玄坂 ":         "道玄坂",
	}
	for in, want := range cases {
		assert.Equal(t, want, cleanTown(in), in)
	}
}

func TestWriteSQL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, []area{
		{"2040023", "東京都", "清瀬市", "竹丘"},
		{"0000000", "X", "O'Hara", ""},
	}))
	sql := buf.String()
	assert.Contains(t, sql, "  ('2040023', '東京都', '清瀬市', '竹丘'),\n")
	assert.Contains(t, sql, "  ('0000000', 'X', 'O''Hara', '')\nON CONFLICT DO NOTHING;\n")
	assert.Equal(t, 1, strings.Count(sql, "INSERT INTO"))
}

func TestWriteSQL_Lotes(t *testing.T) {
	areas := make([]area, batchSize+1)
	for i := range areas {
		areas[i] = area{code: "1234567", prefecture: "東京都", city: "清瀬市"}
	}
	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, areas))
	assert.Equal(t, 2, strings.Count(buf.String(), "INSERT INTO"))
	assert.Equal(t, 2, strings.Count(buf.String(), "ON CONFLICT DO NOTHING;"))
}

func TestDefaultOutPath_FueraDeMigraciones(t *testing.T) {
	path := defaultOutPath("/repo")
	assert.Equal(t, filepath.Join("/repo", "internal", "infrastructure", "postgres", "seeds", "postal_codes.sql"), path)
	assert.NotContains(t, filepath.ToSlash(path), "/migrations/")
}
