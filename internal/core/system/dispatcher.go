package system

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ld49/drift/internal/core/ecs"
)

var (
	ErrDuplicateSystem   = errors.New("system: duplicate name")
	ErrUnknownDependency = errors.New("system: unknown dependency")
	ErrCycle             = errors.New("system: dependency cycle")
)

type entry struct {
	name   string
	sys    System
	after  []string
	access Access
	stage  int
}

// Builder collects systems and the names each must follow. The graph is
// static: it is declared once at startup and resolved by Build.
type Builder struct {
	entries  []*entry
	byName   map[string]*entry
	errs     []error
	parallel bool
	log      *zap.Logger
}

func NewBuilder() *Builder {
	return &Builder{
		entries: make([]*entry, 0, 16),
		byName:  make(map[string]*entry, 16),
		log:     zap.NewNop(),
	}
}

// Add registers sys under name, ordered after every system in after.
func (b *Builder) Add(name string, sys System, after ...string) *Builder {
	if _, ok := b.byName[name]; ok {
		b.errs = append(b.errs, fmt.Errorf("%w: %q", ErrDuplicateSystem, name))
		return b
	}
	e := &entry{name: name, sys: sys, after: after, access: sys.Access()}
	b.entries = append(b.entries, e)
	b.byName[name] = e
	return b
}

// Parallel makes the dispatcher run the members of a stage concurrently.
func (b *Builder) Parallel(on bool) *Builder {
	b.parallel = on
	return b
}

func (b *Builder) Logger(log *zap.Logger) *Builder {
	b.log = log
	return b
}

// Build checks the graph and splits it into stages. A system goes into the
// earliest stage after all of its dependencies in which it conflicts with no
// system already placed there.
func (b *Builder) Build() (*Dispatcher, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	for _, e := range b.entries {
		for _, dep := range e.after {
			if _, ok := b.byName[dep]; !ok {
				return nil, fmt.Errorf("%w: %q needs %q", ErrUnknownDependency, e.name, dep)
			}
		}
	}

	order, err := b.topoSort()
	if err != nil {
		return nil, err
	}

	var stages [][]*entry
	for _, e := range order {
		s := 0
		for _, dep := range e.after {
			if d := b.byName[dep]; d.stage+1 > s {
				s = d.stage + 1
			}
		}
		for ; s < len(stages); s++ {
			if !conflictsWithStage(e, stages[s]) {
				break
			}
		}
		if s == len(stages) {
			stages = append(stages, nil)
		}
		e.stage = s
		stages[s] = append(stages[s], e)
	}

	d := &Dispatcher{stages: stages, parallel: b.parallel, log: b.log}
	b.log.Debug("dispatcher built",
		zap.Int("systems", len(order)),
		zap.Int("stages", len(stages)),
		zap.Bool("parallel", b.parallel),
		zap.String("plan", d.String()))
	return d, nil
}

// topoSort orders entries so each follows its dependencies, keeping
// registration order among independent systems.
func (b *Builder) topoSort() ([]*entry, error) {
	placed := make(map[string]bool, len(b.entries))
	order := make([]*entry, 0, len(b.entries))
	for len(order) < len(b.entries) {
		progress := false
		for _, e := range b.entries {
			if placed[e.name] || !depsPlaced(e, placed) {
				continue
			}
			placed[e.name] = true
			order = append(order, e)
			progress = true
		}
		if !progress {
			var stuck []string
			for _, e := range b.entries {
				if !placed[e.name] {
					stuck = append(stuck, e.name)
				}
			}
			return nil, fmt.Errorf("%w among %s", ErrCycle, strings.Join(stuck, ", "))
		}
	}
	return order, nil
}

func depsPlaced(e *entry, placed map[string]bool) bool {
	for _, dep := range e.after {
		if !placed[dep] {
			return false
		}
	}
	return true
}

func conflictsWithStage(e *entry, stage []*entry) bool {
	for _, other := range stage {
		if e.access.Conflicts(other.access) {
			return true
		}
	}
	return false
}

// Dispatcher executes systems stage by stage. A stage finishes completely
// before the next one starts, so no system observes a partial stage.
type Dispatcher struct {
	stages   [][]*entry
	parallel bool
	log      *zap.Logger
}

// Setup calls every system's Setup in execution order.
func (d *Dispatcher) Setup(w *ecs.World) error {
	for _, stage := range d.stages {
		for _, e := range stage {
			if err := e.sys.Setup(w); err != nil {
				return fmt.Errorf("setup %s: %w", e.name, err)
			}
		}
	}
	return nil
}

// Dispatch runs every stage once. It stops at the first stage that reports
// an error; later stages do not run.
func (d *Dispatcher) Dispatch(w *ecs.World) error {
	for _, stage := range d.stages {
		if err := d.runStage(w, stage); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) runStage(w *ecs.World, stage []*entry) error {
	if !d.parallel || len(stage) == 1 {
		for _, e := range stage {
			if err := e.sys.Run(w); err != nil {
				return fmt.Errorf("system %s: %w", e.name, err)
			}
		}
		return nil
	}

	var g errgroup.Group
	for _, e := range stage {
		g.Go(func() error {
			if err := e.sys.Run(w); err != nil {
				return fmt.Errorf("system %s: %w", e.name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Stages returns the system names of each stage in execution order.
func (d *Dispatcher) Stages() [][]string {
	out := make([][]string, len(d.stages))
	for i, stage := range d.stages {
		for _, e := range stage {
			out[i] = append(out[i], e.name)
		}
	}
	return out
}

func (d *Dispatcher) String() string {
	var sb strings.Builder
	for i, names := range d.Stages() {
		if i > 0 {
			sb.WriteString(" -> ")
		}
		sb.WriteString("[")
		sb.WriteString(strings.Join(names, " "))
		sb.WriteString("]")
	}
	return sb.String()
}
