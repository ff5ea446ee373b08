package ir

import (
	"fmt"

	"github.com/dekarrin/embossfe/grammar"
	"github.com/dekarrin/embossfe/parse"
	"github.com/dekarrin/embossfe/token"
)

// Handler computes the IR value for one production's node, given the
// already-computed values of its children in left-to-right order. A leaf
// child (a terminal symbol with no registered handler of its own) is passed
// through as its *token.Token. bits is the Builder's anonymous-bit-block
// name counter, reset once per Build call (§4.5 "Anonymous bit blocks",
// §5); only the handful of handlers that synthesize an anonymous field name
// need it.
type Handler func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error)

// Registry binds a Handler to each grammar production that needs one;
// productions with no registered handler (most auxiliary list/optional
// productions) are handled generically by Builder, which folds a list
// production's children into a single []any and drops an epsilon
// production to nil.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: map[string]Handler{}}
}

// Bind registers h for the production head -> production. It panics if a
// handler is already registered for that exact production, since that is
// always a build-time authoring mistake, never a runtime condition.
func (r *Registry) Bind(head string, production []string, h Handler) {
	key := (grammar.HeadedProduction{Head: head, Production: grammar.Production(production)}).String()
	if _, exists := r.handlers[key]; exists {
		panic("ir: duplicate handler registered for production " + key)
	}
	r.handlers[key] = h
}

func (r *Registry) lookup(hp grammar.HeadedProduction) (Handler, bool) {
	h, ok := r.handlers[hp.String()]
	return h, ok
}

// Builder translates a parse.Tree produced against DefinitionGrammar into a
// Module, by an iterative (explicit-stack, non-recursive) bottom-up walk:
// no Go call stack frame is used per grammar nesting level, so translating
// a deeply nested or generated format definition cannot overflow it.
type Builder struct {
	registry *Registry
	bits     *anonymousBitsCounter
}

// NewBuilder returns a Builder bound to registry.
func NewBuilder(registry *Registry) *Builder {
	return &Builder{registry: registry}
}

// frame describes the shape of one entry of the explicit walk stack: the
// parse tree node being visited, and the values computed so far for its
// children. walk itself keeps its stack entries in its own local pending
// type.
type frame struct {
	node     *parse.Tree
	childIdx int
	values   []any
}

// Build walks tree bottom-up and returns the Module value of its root
// production. It resets the anonymous-bit-block name counter first, so
// that repeated calls against equivalent input always produce the same
// names (§5).
func (b *Builder) Build(tree *parse.Tree, sourceFile string) (*Module, error) {
	b.bits = &anonymousBitsCounter{}

	result, err := b.walk(tree)
	if err != nil {
		return nil, err
	}

	mod, ok := result.(*Module)
	if !ok {
		return nil, fmt.Errorf("ir: root production did not produce a *Module (got %T)", result)
	}
	mod.SourceFile = sourceFile
	return mod, nil
}

// walk performs the iterative post-order traversal. Each stack frame tracks
// which child is next to descend into; when a frame has processed all of
// its children, its node's value is computed (via a registered handler, or
// the generic list/epsilon/passthrough fallback) and popped up to its
// parent's values slice.
func (b *Builder) walk(root *parse.Tree) (any, error) {
	type pending struct {
		node   *parse.Tree
		values []any
		idx    int
	}

	stack := []*pending{{node: root}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if top.node.IsLeaf() {
			stack = stack[:len(stack)-1]
			value := any(top.node.Token)
			if len(stack) == 0 {
				return value, nil
			}
			parent := stack[len(stack)-1]
			parent.values = append(parent.values, value)
			continue
		}

		if top.idx < len(top.node.Children) {
			child := top.node.Children[top.idx]
			top.idx++
			stack = append(stack, &pending{node: child})
			continue
		}

		value, err := b.reduceNode(top.node, top.values)
		if err != nil {
			return nil, err
		}

		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return value, nil
		}
		parent := stack[len(stack)-1]
		parent.values = append(parent.values, value)
	}

	return nil, fmt.Errorf("ir: empty tree")
}

func (b *Builder) reduceNode(node *parse.Tree, children []any) (any, error) {
	hp := *node.Production

	if h, ok := b.registry.lookup(hp); ok {
		return h(node.Location, children, b.bits)
	}

	return genericReduce(hp, children)
}

// genericReduce implements the fallback behavior for every auxiliary
// production the AddStar/AddPlus/AddOptional helpers generate, so that
// authoring a handler for every such production by hand is never required:
//
//   - an epsilon production (no children) reduces to nil
//   - a "list -> list item" production appends item's value to the []any
//     already accumulated for list
//   - a "list -> item" production (the base case of AddPlus, "item+ ->
//     item") starts a fresh []any{item}
//   - anything else with exactly one child passes that child's value
//     through unchanged (the common "X -> Y" passthrough production, e.g.
//     expr -> choice)
func genericReduce(hp grammar.HeadedProduction, children []any) (any, error) {
	if hp.Production.IsEpsilon() {
		return nil, nil
	}

	if len(hp.Production) == 2 && hp.Production[0] == hp.Head {
		list, _ := children[0].([]any)
		return append(list, children[1]), nil
	}

	if len(hp.Production) == 1 && hp.Head == hp.Production[0]+"+" {
		return []any{children[0]}, nil
	}

	if len(children) == 1 {
		if existing, ok := children[0].([]any); ok {
			return existing, nil
		}
		return children[0], nil
	}

	return children, nil
}
