package scenario

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	mceerrors "github.com/nemomobile/mce-buildtools/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetStore(t *testing.T) {
	t.Helper()
	original := scenarioData
	t.Cleanup(func() {
		scenarioData = original
		storeOnce = sync.Once{}
		cachedScenarios = nil
		cachedErr = nil
	})
	storeOnce = sync.Once{}
	cachedScenarios = nil
	cachedErr = nil
}

func TestDefault(t *testing.T) {
	resetStore(t)

	got, err := Default()
	require.NoError(t, err)

	interactive := []string{"interactive", "ondemand", "conservative", "performance", "userspace", "powersave"}
	want := []Scenario{
		{Name: "Performance", Percent: 80, Governors: []string{"performance", "interactive", "ondemand", "conservative", "userspace", "powersave"}},
		{Name: "Interactive", Percent: 50, Governors: interactive},
		{Name: "Inactive", Percent: 0, Governors: interactive},
		{Name: "Powersave", Percent: 0, Governors: []string{"powersave", "conservative", "interactive", "ondemand", "performance", "userspace"}},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, "CPUScalingGovernorPerformance", got[0].SectionName())
}

func TestDefault_ReturnsCopies(t *testing.T) {
	resetStore(t)

	first, err := Default()
	require.NoError(t, err)
	first[0].Governors[0] = "mutated"
	first[0].Name = "Mutated"

	second, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "performance", second[0].Governors[0])
	assert.Equal(t, "Performance", second[0].Name)
}

func TestDefault_CachesErrorUntilReset(t *testing.T) {
	resetStore(t)

	scenarioData = []byte(": not yaml")
	_, err := Default()
	require.Error(t, err)

	scenarioData = []byte("scenarios:\n  - name: A\n    percent: 1\n    governors: [performance]\n")
	_, err = Default()
	require.Error(t, err, "error should stay cached")

	storeOnce = sync.Once{}
	cachedScenarios = nil
	cachedErr = nil

	got, err := Default()
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestDefault_NotInitialized(t *testing.T) {
	resetStore(t)
	storeOnce.Do(func() {})

	_, err := Default()
	require.Error(t, err)
	assert.Equal(t, mceerrors.ErrCodeInternal, mceerrors.CodeOf(err))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    []Scenario
		wantErr bool
	}{
		{
			name: "yaml normalizes governors",
			data: "scenarios:\n  - name: ' Turbo '\n    percent: 100\n    governors: [Performance, OnDemand]\n",
			want: []Scenario{{Name: "Turbo", Percent: 100, Governors: []string{"performance", "ondemand"}}},
		},
		{
			name: "json",
			data: `{"scenarios":[{"name":"Idle","percent":0,"governors":["powersave"]}]}`,
			want: []Scenario{{Name: "Idle", Percent: 0, Governors: []string{"powersave"}}},
		},
		{
			name:    "empty document",
			data:    "",
			wantErr: true,
		},
		{
			name:    "unknown field",
			data:    "scenarios:\n  - name: A\n    pct: 1\n    governors: [performance]\n",
			wantErr: true,
		},
		{
			name:    "no scenarios",
			data:    "scenarios: []\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.data))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, mceerrors.ErrCodeInvalidRequest, mceerrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	perf := []string{"performance"}

	tests := []struct {
		name      string
		scenarios []Scenario
		wantErr   bool
	}{
		{"valid", []Scenario{{Name: "A", Percent: 0, Governors: perf}, {Name: "B", Percent: 100, Governors: perf}}, false},
		{"unknown governor is allowed", []Scenario{{Name: "A", Percent: 10, Governors: []string{"vendorgov"}}}, false},
		{"empty name", []Scenario{{Name: "", Percent: 0, Governors: perf}}, true},
		{"bracket in name", []Scenario{{Name: "A]", Percent: 0, Governors: perf}}, true},
		{"duplicate name ignoring case", []Scenario{{Name: "Idle", Governors: perf}, {Name: "IDLE", Governors: perf}}, true},
		{"negative percent", []Scenario{{Name: "A", Percent: -1, Governors: perf}}, true},
		{"percent above 100", []Scenario{{Name: "A", Percent: 101, Governors: perf}}, true},
		{"empty preferences", []Scenario{{Name: "A", Percent: 5}}, true},
		{"duplicate governor", []Scenario{{Name: "A", Governors: []string{"ondemand", "ondemand"}}}, true},
		{"empty governor", []Scenario{{Name: "A", Governors: []string{""}}}, true},
		{"none", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.scenarios)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"ondemnd", "ondemand", true},
		{"perfomance", "performance", true},
		{"schedutl", "schedutil", true},
		{"hyperdrive", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Suggest(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scenarios:\n  - name: Boost\n    percent: 90\n    governors: [performance, schedutil]\n"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []Scenario{{Name: "Boost", Percent: 90, Governors: []string{"performance", "schedutil"}}}, got)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, mceerrors.ErrCodeNotFound, mceerrors.CodeOf(err))
}
