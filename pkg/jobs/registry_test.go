package jobs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tellapart/mrjerb/pkg/streaming"
)

func TestRegistry_RegisterGetList(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("dna", streaming.JobRequest{Name: "DNA", Inputs: []string{"/a"}}))
	require.NoError(t, r.Register("audience", streaming.JobRequest{Name: "Audience"}))

	job, err := r.Get("dna")
	require.NoError(t, err)
	require.Equal(t, "DNA", job.Name)

	require.Equal(t, []string{"audience", "dna"}, r.List())
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("dna", streaming.JobRequest{}))
	require.ErrorContains(t, r.Register("dna", streaming.JobRequest{}), "already registered")
	require.Error(t, r.Register("", streaming.JobRequest{}))
}

func TestRegistry_GetUnknown(t *testing.T) {
	_, err := NewRegistry().Get("missing")
	require.ErrorIs(t, err, ErrJobNotFound)
}

func TestRegistry_GetReturnsCopy(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("dna", streaming.JobRequest{Inputs: []string{"/a"}}))

	job, _ := r.Get("dna")
	job.Inputs[0] = "/changed"

	again, _ := r.Get("dna")
	require.Equal(t, []string{"/a"}, again.Inputs)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestRegistry_LoadFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "dna.yaml"), `
inputs:
  - /a/b/c/d
  - w/x/y/z
output: e/f/g/h
script: mrjob_file.py
archive: /tmp/code.tar.gz
job_name: DNA
python_path: code/tellapart/gen-py:code/tellapart/py
num_reduce_tasks: 37
jar_paths: [streaming_jar]
partitioner_class: com.foo.bar.baz
output_protocol: raw_value
cleanup: NONE
delete_output: true
compress_output: "true"
hadoop_binary: /opt/hadoop/bin/hadoop
`)
	writeFile(t, filepath.Join(dir, "nested", "deeper", "other.yaml"), `
name: audience
inputs: [/logs]
output: out
script: audience.py
archive: code.tar.gz
job_name: Audience
`)
	writeFile(t, filepath.Join(dir, "nested", "README.md"), "not a job")

	r := NewRegistry()
	n, err := r.LoadFiles(filepath.Join(dir, "**", "*.yaml"))
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []string{"audience", "dna"}, r.List())

	job, err := r.Get("dna")
	require.NoError(t, err)
	require.Equal(t, streaming.JobRequest{
		Inputs:           []string{"/a/b/c/d", "w/x/y/z"},
		Output:           "e/f/g/h",
		Script:           "mrjob_file.py",
		Archive:          "/tmp/code.tar.gz",
		Name:             "DNA",
		PythonPath:       "code/tellapart/gen-py:code/tellapart/py",
		NumReduceTasks:   37,
		JarPaths:         []string{"streaming_jar"},
		PartitionerClass: "com.foo.bar.baz",
		OutputProtocol:   streaming.OutputProtocolRawValue,
		Cleanup:          streaming.CleanupNone,
		DeleteOutput:     true,
		Compress:         streaming.CompressionOn,
		HadoopBinary:     "/opt/hadoop/bin/hadoop",
	}, job)

	other, err := r.Get("audience")
	require.NoError(t, err)
	require.Nil(t, other.JarPaths)
	require.Equal(t, "Audience", other.Name)
}

func TestRegistry_LoadFiles_DuplicateAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yaml"), "name: same\noutput: a\n")
	writeFile(t, filepath.Join(dir, "b.yaml"), "name: same\noutput: b\n")

	_, err := NewRegistry().LoadFiles(filepath.Join(dir, "*.yaml"))
	require.ErrorContains(t, err, "already registered")
}

func TestRegistry_LoadFiles_OverlappingPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "dna.yaml"), "output: a\n")

	n, err := NewRegistry().LoadFiles(filepath.Join(dir, "*.yaml"), filepath.Join(dir, "**", "*.yaml"))
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestRegistry_LoadFiles_NoMatches(t *testing.T) {
	n, err := NewRegistry().LoadFiles(filepath.Join(t.TempDir(), "**", "*.yaml"))
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestRegistry_LoadFiles_Malformed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.yaml"), "inputs: [unterminated\n")

	_, err := NewRegistry().LoadFiles(filepath.Join(dir, "*.yaml"))
	require.ErrorContains(t, err, "bad.yaml")
}

func TestReadFile_CompressOutputBool(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    streaming.Compression
		jobconf string
	}{
		{"unquoted true", "true", streaming.CompressionOn, `--jobconf="mapred.output.compress=true"`},
		{"unquoted false", "false", streaming.CompressionOff, `--jobconf="mapred.output.compress=false"`},
		{"quoted true", `"true"`, streaming.CompressionOn, `--jobconf="mapred.output.compress=true"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "job.yaml")
			writeFile(t, path, "inputs: [a]\noutput: o\nscript: s.py\narchive: c.tar.gz\njob_name: N\ncompress_output: "+tt.value+"\n")

			name, req, err := ReadFile(path)
			require.NoError(t, err)
			require.Equal(t, "job", name)
			require.Equal(t, tt.want, req.Compress)
			require.Contains(t, streaming.BuildCommand(req).String(), tt.jobconf)
		})
	}
}
