package workflow

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehsaniara/ezbatch/internal/ezbatch/job"
	"github.com/ehsaniara/ezbatch/internal/ezbatch/mount"
)

func sampleWorkflow(t *testing.T) *Workflow {
	t.Helper()
	recursive := true
	storage := 50

	prep := job.New("public.ecr.aws/docker/library/python:3.12", "python /data/prep.py")
	prep.Preload = true
	prep.Environment = map[string]string{"STAGE": "prep"}
	prep.Mounts = mount.Set{
		Read:  []mount.Descriptor{{Source: "s3://datasets/raw/", Destination: "/data/raw", Recursive: &recursive}},
		Write: []mount.Descriptor{{Source: "/data/clean.csv", Destination: "s3://datasets/clean.csv", EncryptionMode: mount.EncryptionAES256}},
	}

	train := job.New("python:3.12", "python train.py")
	train.VCPUs = 4
	train.MemoryMiB = 16384
	train.StorageGiB = &storage
	train.Tags = map[string]string{"team": "ml"}
	train.Queue = "gpu"

	report := job.New("alpine", "echo done")
	report.Platform = job.EC2

	w := New("nightly")
	require.NoError(t, w.AddJob("prep", prep))
	require.NoError(t, w.AddJob("train", train, "prep"))
	require.NoError(t, w.AddJob("report", report, "train", "prep"))
	return w
}

// workflowComparer compares workflows field by field, including job order.
func workflowComparer(opts ...cmp.Option) cmp.Option {
	return cmp.Comparer(func(a, b *Workflow) bool {
		if a.Name != b.Name || !cmp.Equal(a.Dependencies, b.Dependencies) {
			return false
		}
		if !cmp.Equal(a.Jobs.Names(), b.Jobs.Names()) {
			return false
		}
		for _, name := range a.Jobs.Names() {
			x, _ := a.Jobs.Get(name)
			y, _ := b.Jobs.Get(name)
			if !cmp.Equal(x, y, opts...) {
				return false
			}
		}
		return true
	})
}

func TestSaveLoad_JSONRoundTrip(t *testing.T) {
	w := sampleWorkflow(t)
	path := filepath.Join(t.TempDir(), "nightly.json")

	require.NoError(t, Save(w, path))
	loaded, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cmp.Equal(w, loaded, workflowComparer()))

	for _, name := range w.Jobs.Names() {
		want, _ := w.Jobs.Get(name)
		got, _ := loaded.Jobs.Get(name)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("job %s mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestSave_JSONLayout(t *testing.T) {
	w := sampleWorkflow(t)
	data, err := Marshal(w, FormatJSON)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "{\n    \"name\": \"nightly\""))
	assert.Less(t, strings.Index(text, `"prep": {`), strings.Index(text, `"train": {`))
	assert.Less(t, strings.Index(text, `"train": {`), strings.Index(text, `"report": {`))
}

func TestSaveLoad_YAMLRoundTrip(t *testing.T) {
	w := sampleWorkflow(t)
	path := filepath.Join(t.TempDir(), "nightly.yaml")

	require.NoError(t, Save(w, path))
	loaded, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cmp.Equal(w, loaded, workflowComparer(cmpopts.EquateEmpty())))

	order, err := loaded.Order()
	require.NoError(t, err)
	assert.Equal(t, []string{"prep", "train", "report"}, order)
}

func TestMarshalUnmarshal_KeepsMountOptions(t *testing.T) {
	spec := job.New("python:3.12", "python train.py")
	spec.Mounts = mount.Set{
		Read:  []mount.Descriptor{{Source: "s3://b/in/", Destination: "/in", Options: "--recursive --exclude *.tmp"}},
		Write: []mount.Descriptor{{Source: "/out", Destination: "s3://b/out/", Options: "--quiet --sse aws:kms --sse-kms-key-id k"}},
	}
	w := New("opts")
	require.NoError(t, w.AddJob("train", spec))

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Marshal(w, format)
			require.NoError(t, err)
			loaded, err := Unmarshal(data, format)
			require.NoError(t, err)

			got, _ := loaded.Jobs.Get("train")
			if diff := cmp.Diff(spec.Mounts, got.Mounts, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("mounts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_YAMLDocument(t *testing.T) {
	doc := `name: etl
jobs:
  extract:
    image: alpine
    command: ./extract.sh
  load:
    image: alpine
    command: ./load.sh
    platform: EC2
    vcpus: 3
    memory: 4096
dependencies:
  load: [extract]
`
	path := filepath.Join(t.TempDir(), "etl.yml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	w, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "etl", w.Name)
	assert.Equal(t, []string{"extract", "load"}, w.Jobs.Names())

	load, ok := w.Jobs.Get("load")
	require.True(t, ok)
	assert.Equal(t, job.EC2, load.Platform)
	assert.Equal(t, 3, load.VCPUs)

	extract, _ := w.Jobs.Get("extract")
	assert.Equal(t, job.DefaultMemoryMiB, extract.MemoryMiB)
}

func TestUnmarshal_RejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		doc    string
	}{
		{"unknown top level key json", FormatJSON, `{"name":"x","jobs":{},"dependencies":{},"owner":"me"}`},
		{"unknown job key json", FormatJSON, `{"name":"x","jobs":{"a":{"image":"alpine","command":"x","gpu":1}}}`},
		{"duplicate job json", FormatJSON, `{"name":"x","jobs":{"a":{"image":"alpine","command":"x"},"a":{"image":"alpine","command":"y"}}}`},
		{"jobs not an object json", FormatJSON, `{"name":"x","jobs":[]}`},
		{"unknown top level key yaml", FormatYAML, "name: x\nowner: me\n"},
		{"unknown job key yaml", FormatYAML, "name: x\njobs:\n  a:\n    image: alpine\n    command: x\n    gpu: 1\n"},
		{"jobs not a mapping yaml", FormatYAML, "name: x\njobs: [a]\n"},
		{"unsupported format", Format("toml"), `name = "x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.doc), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestUnmarshal_MissingSectionsAreEmpty(t *testing.T) {
	w, err := Unmarshal([]byte(`{"name":"x"}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 0, w.Jobs.Len())
	assert.NotNil(t, w.Dependencies)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("wf.yml"))
	assert.Equal(t, FormatYAML, FormatForPath("wf.YAML"))
	assert.Equal(t, FormatJSON, FormatForPath("wf.json"))
	assert.Equal(t, FormatJSON, FormatForPath("wf"))
}
