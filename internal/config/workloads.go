package config

import (
	"fmt"
	"os"

	"github.com/Jeffail/gabs/v2"
	"golang.org/x/xerrors"
)

var ErrNoWorkloads = xerrors.New("config has no Workloads array")

// LoadWorkloads reads a JSON file of the form
//
//	{"Workloads": [{"Name": "small", "Target": "skiplist", "N": 1000}, ...]}
//
// A workload without N uses defaultN, one without Name is named after its
// target.
func LoadWorkloads(path string, defaultN int) ([]Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("read workloads: %w", err)
	}
	return ParseWorkloads(data, defaultN)
}

func ParseWorkloads(data []byte, defaultN int) ([]Workload, error) {
	jsonParsed, err := gabs.ParseJSON(data)
	if err != nil {
		return nil, xerrors.Errorf("parse workloads: %w", err)
	}
	if !jsonParsed.Exists("Workloads") {
		return nil, ErrNoWorkloads
	}
	children := jsonParsed.S("Workloads").Children()
	ws := make([]Workload, 0, len(children))
	for i, child := range children {
		cfg := child.ChildrenMap()
		w := Workload{N: defaultN}
		target, ok := cfg["Target"]
		if !ok {
			return nil, xerrors.Errorf("workload %d: %w", i, ErrUnknownTarget)
		}
		w.Target = fmt.Sprint(target.Data())
		w.Name = w.Target
		if name, ok := cfg["Name"]; ok {
			w.Name = fmt.Sprint(name.Data())
		}
		if n, ok := cfg["N"]; ok {
			f, isNum := n.Data().(float64)
			if !isNum {
				return nil, xerrors.Errorf("workload %q: N is %T: %w", w.Name, n.Data(), ErrInvalidItems)
			}
			w.N = int(f)
		}
		ws = append(ws, w)
	}
	return ws, nil
}
