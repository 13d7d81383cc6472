package validation

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formcheck/pkg/model"
)

// Built-in kind rule identifiers.
const (
	RuleFullName = "fullName"
	RuleEmail    = "email"
	RulePassword = "password"
	RuleAge      = "age"
	RulePhone    = "phone"
	RuleCheckbox = "checkbox"
	RuleSelect   = "select"
)

// Matcher decides whether a kind rule applies to a descriptor.
type Matcher func(field model.Field) bool

// Check inspects a non-empty value and returns a message, or "" when valid.
type Check func(field model.Field, value string) string

// Normalizer cleans a value up for display. Presenters apply it on blur; the
// engine never normalises before checking.
type Normalizer func(value string) string

// RuleOption configures a registered rule.
type RuleOption func(*rule)

// WithNormalizer attaches a normaliser to a rule.
func WithNormalizer(fn Normalizer) RuleOption {
	return func(r *rule) {
		r.normalize = fn
	}
}

type rule struct {
	name      string
	priority  int
	match     Matcher
	check     Check
	normalize Normalizer
	order     int
}

// Registry maps field kinds to checks. Rules whose matcher accepts a field
// run in priority order (higher first, ties by registration order) and the
// first failing rule wins. Registering a name twice replaces the earlier rule.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
	seq   int
}

// NewRegistry constructs a registry with the built-in kind rules registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// NewEmptyRegistry constructs a registry without built-ins.
func NewEmptyRegistry() *Registry {
	return &Registry{}
}

// Register adds or replaces the rule called name.
func (r *Registry) Register(name string, priority int, match Matcher, check Check, opts ...RuleOption) {
	if r == nil || match == nil || check == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}

	entry := rule{
		name:     trimmed,
		priority: priority,
		match:    match,
		check:    check,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&entry)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry.order = r.seq
	r.seq++

	kept := r.rules[:0]
	for _, existing := range r.rules {
		if existing.name != trimmed {
			kept = append(kept, existing)
		}
	}
	r.rules = append(kept, entry)
	sort.SliceStable(r.rules, func(i, j int) bool {
		if r.rules[i].priority == r.rules[j].priority {
			return r.rules[i].order < r.rules[j].order
		}
		return r.rules[i].priority > r.rules[j].priority
	})
}

// Unregister removes the rule called name.
func (r *Registry) Unregister(name string) {
	if r == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.rules[:0]
	for _, existing := range r.rules {
		if existing.name != trimmed {
			kept = append(kept, existing)
		}
	}
	r.rules = kept
}

// Names lists the registered rules in evaluation order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.rules))
	for _, entry := range r.rules {
		names = append(names, entry.name)
	}
	return names
}

// Resolve returns the rules matching field, in evaluation order.
func (r *Registry) Resolve(field model.Field) []string {
	matched := r.matching(field)
	names := make([]string, 0, len(matched))
	for _, entry := range matched {
		names = append(names, entry.name)
	}
	return names
}

func (r *Registry) matching(field model.Field) []rule {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []rule
	for _, entry := range r.rules {
		if entry.match(field) {
			out = append(out, entry)
		}
	}
	return out
}

func (r *Registry) registerBuiltins() {
	r.Register(RuleFullName, 100, nameIs("fullName"), checkFullName, WithNormalizer(NormalizeFullName))
	r.Register(RuleEmail, 90, typeIs(model.FieldTypeEmail), checkEmail, WithNormalizer(strings.TrimSpace))
	r.Register(RulePassword, 80, typeIs(model.FieldTypePassword), checkPassword)
	r.Register(RuleAge, 70, nameIs("age"), checkAge, WithNormalizer(strings.TrimSpace))
	r.Register(RulePhone, 60, nameIs("phone"), checkPhone, WithNormalizer(strings.TrimSpace))
	r.Register(RuleCheckbox, 50, func(field model.Field) bool {
		return field.Required && field.Is(model.FieldTypeCheckbox)
	}, checkAccepted)
	r.Register(RuleSelect, 40, func(field model.Field) bool {
		return field.Is(model.FieldTypeSelect) && len(field.Options) > 0
	}, checkOption)
}

func nameIs(name string) Matcher {
	return func(field model.Field) bool {
		return field.Name == name
	}
}

func typeIs(t model.FieldType) Matcher {
	return func(field model.Field) bool {
		return field.Is(t)
	}
}
