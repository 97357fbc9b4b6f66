package main

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"jobShop/internal/bench"
	"jobShop/internal/config"
	"jobShop/internal/descent"
	"jobShop/internal/greedy"
	"jobShop/internal/opt"
	"jobShop/internal/sa"
	"jobShop/internal/ts"
)

// Фабрики. Улучшающие солверы стартуют с жадного решения по правилу из [greedy].

func newGreedyFactory(p greedy.Priority) func(seed int64) (opt.Optimizer, error) {
	return func(int64) (opt.Optimizer, error) {
		return greedy.New(greedy.Config{Priority: p})
	}
}

func newDescentFactory(c *config.Config) func(seed int64) (opt.Optimizer, error) {
	return func(int64) (opt.Optimizer, error) {
		base, err := greedy.New(c.GreedyConfig())
		if err != nil {
			return nil, err
		}
		return descent.New(c.DescentConfig(), base)
	}
}

func newTSFactory(c *config.Config) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		base, err := greedy.New(c.GreedyConfig())
		if err != nil {
			return nil, err
		}
		return ts.New(c.TabuConfig(), base, rand.New(rand.NewSource(seed)))
	}
}

func newSAFactory(c *config.Config) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		base, err := greedy.New(c.GreedyConfig())
		if err != nil {
			return nil, err
		}
		return sa.New(c.SAConfig(), base, rand.New(rand.NewSource(seed)))
	}
}

// algorithms возвращает все доступные солверы: "greedy" (правило из настроек), каждое
// правило приоритета по имени, "descent", "tabu" и "sa".
func algorithms(c *config.Config) map[string]bench.Algorithm {
	available := map[string]bench.Algorithm{
		"greedy":  {Name: "greedy", Factory: newGreedyFactory(c.GreedyConfig().Priority)},
		"descent": {Name: "descent", Factory: newDescentFactory(c)},
		"tabu":    {Name: "tabu", Factory: newTSFactory(c)},
		"sa":      {Name: "sa", Factory: newSAFactory(c)},
	}
	for _, p := range greedy.Priorities {
		available[string(p)] = bench.Algorithm{Name: string(p), Factory: newGreedyFactory(p)}
	}
	return available
}

// selectAlgorithms разбирает список имён; правила приоритета принимаются в любом регистре.
func selectAlgorithms(c *config.Config, names string) ([]bench.Algorithm, error) {
	available := algorithms(c)

	var selected []bench.Algorithm
	for _, name := range bench.SplitList(names) {
		key := strings.ToLower(name)
		if p, err := greedy.ParsePriority(name); err == nil {
			key = string(p)
		}
		al, ok := available[key]
		if !ok {
			return nil, errors.Newf("солвер %q не поддерживается; доступные: %v", name, keys(available))
		}
		selected = append(selected, al)
	}
	if len(selected) == 0 {
		return nil, errors.New("не выбран ни один солвер")
	}
	return selected, nil
}

func keys(m map[string]bench.Algorithm) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
