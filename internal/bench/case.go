package bench

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"jobShop/internal/jobshop"
)

// Case — один экземпляр набора: файл в формате задачи либо случайный экземпляр J×M.
type Case struct {
	Name         string
	Path         string
	Jobs         int
	Machines     int
	InstanceSeed int64
	BestKnown    int
}

// Instance загружает файл или генерирует случайный экземпляр по сиду.
func (c Case) Instance() (*jobshop.Instance, error) {
	if c.Path != "" {
		inst, err := jobshop.LoadFile(c.Path)
		if err != nil {
			return nil, err
		}
		if c.Name != "" {
			inst.Name = c.Name
		}
		return inst, nil
	}
	if c.Jobs <= 0 || c.Machines <= 0 {
		return nil, errors.Newf("случай %q: количество работ и машин должно быть > 0", c.Name)
	}
	inst := jobshop.RandomInstance(c.Jobs, c.Machines, 1, 99, randForSeed(c.InstanceSeed))
	inst.Name = c.label()
	return inst, nil
}

func (c Case) label() string {
	if c.Name != "" {
		return c.Name
	}
	return itoa(c.Jobs) + "x" + itoa(c.Machines) + "-s" + strconv.FormatInt(c.InstanceSeed, 10)
}

// ParsePairs разбирает список вида "6x6,10x10" в случайные экземпляры с фиксированными сидами.
func ParsePairs(s string, baseInstanceSeed int64) ([]Case, error) {
	parts := splitCSV(s)
	cases := make([]Case, 0, len(parts))

	for i, p := range parts {
		jm := strings.Split(p, "x")
		if len(jm) != 2 {
			return nil, errors.Newf("пара %q невалидной схемы, пример: 10x5", p)
		}
		jobs, err := atoiStrict(jm[0])
		if err != nil {
			return nil, errors.Wrapf(err, "пара %q: ошибка парсинга количества работ", p)
		}
		machines, err := atoiStrict(jm[1])
		if err != nil {
			return nil, errors.Wrapf(err, "пара %q: ошибка парсинга количества машин", p)
		}
		if jobs <= 0 || machines <= 0 {
			return nil, errors.Newf("пара %q: количество работ и машин должно быть > 0", p)
		}

		seed := baseInstanceSeed + int64(i)*10_000 + int64(jobs)*100 + int64(machines)

		cases = append(cases, Case{
			Jobs:         jobs,
			Machines:     machines,
			InstanceSeed: seed,
		})
	}

	return cases, nil
}

// Suite — YAML-описание набора экземпляров.
//
//	instances:
//	  - name: ft06
//	    path: ft06
//	    best_known: 55
//	random:
//	  - jobs: 10
//	    machines: 5
//	    seed: 7
type Suite struct {
	Instances []struct {
		Name      string `yaml:"name"`
		Path      string `yaml:"path"`
		BestKnown int    `yaml:"best_known"`
	} `yaml:"instances"`
	Random []struct {
		Name     string `yaml:"name"`
		Jobs     int    `yaml:"jobs"`
		Machines int    `yaml:"machines"`
		Seed     int64  `yaml:"seed"`
	} `yaml:"random"`
}

// LoadSuite читает набор; относительные пути берутся от каталога файла набора.
func LoadSuite(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read suite %s", path)
	}
	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, errors.Wrapf(err, "parse suite %s", path)
	}

	base := filepath.Dir(path)
	var cases []Case
	for i, in := range suite.Instances {
		if in.Path == "" {
			return nil, errors.Newf("suite %s: instance %d has no path", path, i)
		}
		p := in.Path
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		cases = append(cases, Case{Name: in.Name, Path: p, BestKnown: in.BestKnown})
	}
	for _, r := range suite.Random {
		cases = append(cases, Case{Name: r.Name, Jobs: r.Jobs, Machines: r.Machines, InstanceSeed: r.Seed})
	}
	if len(cases) == 0 {
		return nil, errors.Newf("suite %s is empty", path)
	}
	return cases, nil
}
