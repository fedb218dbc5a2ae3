package instance

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads an instance from a YAML file and validates it.
func Load(name string) (*Instance, error) {
	f, err := openFile(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	inst, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if inst.Name == "" {
		inst.Name = name
	}
	return inst, nil
}

// openFile opens an OS file, checking that it is a regular file.
func openFile(name string) (*os.File, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("file %s is not a regular file", name)
	}
	return os.Open(name) // just open for read access
}

// Read decodes an instance from YAML and validates it.
func Read(r io.Reader) (*Instance, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	inst := &Instance{}
	if err := dec.Decode(inst); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInstance, err)
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// Write encodes an instance as YAML.
func (inst *Instance) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(inst); err != nil {
		return err
	}
	return enc.Close()
}

// Save writes an instance to a YAML file.
func (inst *Instance) Save(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = inst.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
