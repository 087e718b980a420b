package streaming

import (
	"errors"
	"fmt"
)

// OutputProtocol names the mrjob protocol used to write the job output.
// Protocols with "value" in the name drop the key.
type OutputProtocol string

const (
	OutputProtocolJSON        OutputProtocol = "json"
	OutputProtocolJSONValue   OutputProtocol = "json_value"
	OutputProtocolPickle      OutputProtocol = "pickle"
	OutputProtocolPickleValue OutputProtocol = "pickle_value"
	OutputProtocolRawValue    OutputProtocol = "raw_value"
	OutputProtocolRepr        OutputProtocol = "repr"
	OutputProtocolReprValue   OutputProtocol = "repr_value"
)

func (p OutputProtocol) Known() bool {
	switch p {
	case OutputProtocolJSON, OutputProtocolJSONValue,
		OutputProtocolPickle, OutputProtocolPickleValue,
		OutputProtocolRawValue, OutputProtocolRepr, OutputProtocolReprValue:
		return true
	}
	return false
}

// CleanupPolicy controls when mrjob deletes its own files on HDFS.
type CleanupPolicy string

const (
	CleanupNone         CleanupPolicy = "NONE"
	CleanupIfSuccessful CleanupPolicy = "IF_SUCCESSFUL"
	CleanupScratch      CleanupPolicy = "SCRATCH"
	CleanupAll          CleanupPolicy = "ALL"

	DefaultCleanup = CleanupAll
)

func (c CleanupPolicy) Known() bool {
	switch c {
	case CleanupNone, CleanupIfSuccessful, CleanupScratch, CleanupAll:
		return true
	}
	return false
}

// Compression is rendered as text because the hadoop job configuration expects
// the literal "true" or "false".
type Compression string

const (
	CompressionOn  Compression = "true"
	CompressionOff Compression = "false"
)

func (c Compression) Known() bool {
	return c == CompressionOn || c == CompressionOff
}

const DefaultHadoopBinary = "hadoop"

// JobRequest holds the parameters of a single streaming job launch.
//
// Zero values mean "not supplied": NumReduceTasks of 0 keeps the cluster
// default, a nil JarPaths skips the libjars and partitioner arguments, an empty
// OutputProtocol is omitted and an empty Cleanup renders as ALL.
type JobRequest struct {
	Inputs     []string `json:"inputs" mapstructure:"inputs"`
	Output     string   `json:"output" mapstructure:"output"`
	Script     string   `json:"script" mapstructure:"script"`
	Archive    string   `json:"archive" mapstructure:"archive"`
	Name       string   `json:"job_name" mapstructure:"job_name"`
	PythonPath string   `json:"python_path" mapstructure:"python_path"`

	NumReduceTasks   int            `json:"num_reduce_tasks,omitempty" mapstructure:"num_reduce_tasks"`
	JarPaths         []string       `json:"jar_paths,omitempty" mapstructure:"jar_paths"`
	PartitionerClass string         `json:"partitioner_class,omitempty" mapstructure:"partitioner_class"`
	OutputProtocol   OutputProtocol `json:"output_protocol,omitempty" mapstructure:"output_protocol"`
	Cleanup          CleanupPolicy  `json:"cleanup,omitempty" mapstructure:"cleanup"`
	DeleteOutput     bool           `json:"delete_output,omitempty" mapstructure:"delete_output"`
	Compress         Compression    `json:"compress_output,omitempty" mapstructure:"compress_output"`
	HadoopBinary     string         `json:"hadoop_binary,omitempty" mapstructure:"hadoop_binary"`
}

// Validate reports missing required fields. Enumerated values are not checked;
// mrjob rejects unknown ones on its own.
func (r JobRequest) Validate() error {
	var errs []error
	if len(r.Inputs) == 0 {
		errs = append(errs, errors.New("at least one input path is required"))
	}
	for i, in := range r.Inputs {
		if in == "" {
			errs = append(errs, fmt.Errorf("input path %d is empty", i))
		}
	}
	if r.Output == "" {
		errs = append(errs, errors.New("output path is required"))
	}
	if r.Script == "" {
		errs = append(errs, errors.New("job script is required"))
	}
	if r.Archive == "" {
		errs = append(errs, errors.New("archive file is required"))
	}
	if r.NumReduceTasks < 0 {
		errs = append(errs, fmt.Errorf("num_reduce_tasks must be >= 0, got %d", r.NumReduceTasks))
	}
	return errors.Join(errs...)
}
