package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "traffic_data.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeDataFile(t, `[
		{"location": "高雄市苓雅區", "event": "交通管制"},
		{"location": "台南市東區", "event": "號誌故障"},
		{"location": "基隆市仁愛區", "event": "交通順暢"}
	]`)

	s := New(path)
	s.Load()

	records := s.All()
	require.Len(t, records, 3)
	assert.Equal(t, Record{Location: "高雄市苓雅區", Event: "交通管制"}, records[0])
	assert.Equal(t, Record{Location: "台南市東區", Event: "號誌故障"}, records[1])
	assert.Equal(t, Record{Location: "基隆市仁愛區", Event: "交通順暢"}, records[2])
}

func TestLoad_MissingFile_UsesDefaults(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "does-not-exist.json"))
	s.Load()

	assert.Equal(t, DefaultRecords(), s.All())
}

func TestLoad_MalformedFile_UsesDefaults(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "not json at all"},
		{"wrong shape", `{"location": "台北市中正區", "event": "交通順暢"}`},
		{"truncated", `[{"location": "台北市中正區",`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(writeDataFile(t, tt.content))
			s.Load()
			assert.Equal(t, DefaultRecords(), s.All())
		})
	}
}

func TestLoad_Reload_ReplacesWholesale(t *testing.T) {
	path := writeDataFile(t, `[{"location": "A", "event": "B"}]`)

	s := New(path)
	s.Load()
	require.Len(t, s.All(), 1)

	require.NoError(t, os.WriteFile(path, []byte(`[
		{"location": "C", "event": "D"},
		{"location": "E", "event": "F"}
	]`), 0o644))
	s.Load()

	records := s.All()
	require.Len(t, records, 2)
	assert.Equal(t, Record{Location: "C", Event: "D"}, records[0])
}

func TestFirst(t *testing.T) {
	s := New(writeDataFile(t, `[{"location": "A", "event": "B"}, {"location": "C", "event": "D"}]`))
	s.Load()

	first, ok := s.First()
	require.True(t, ok)
	assert.Equal(t, Record{Location: "A", Event: "B"}, first)
}

func TestFirst_Empty(t *testing.T) {
	s := New(writeDataFile(t, `[]`))
	s.Load()

	_, ok := s.First()
	assert.False(t, ok)
	assert.Equal(t, 0, s.Count())
}

func TestAll_ReturnsCopy(t *testing.T) {
	s := New(writeDataFile(t, `[{"location": "A", "event": "B"}]`))
	s.Load()

	records := s.All()
	records[0].Location = "mutated"

	fresh := s.All()
	assert.Equal(t, "A", fresh[0].Location)
}

func TestDefaultRecords_FixedOrder(t *testing.T) {
	defaults := DefaultRecords()
	require.Len(t, defaults, 2)
	assert.Equal(t, Record{Location: "台北市中正區", Event: "交通順暢"}, defaults[0])
	assert.Equal(t, Record{Location: "新北市板橋區", Event: "輕微塞車"}, defaults[1])
}
