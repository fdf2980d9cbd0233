package privilege

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	_ "github.com/google/mangle/builtin"
	mengine "github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"

	"diflabel/principal"
)

// delegationSchema declares the predicates a DatalogPrivilege reasons
// over: direct grants (delegates_to), every principal that has appeared
// in the graph (principal), and the reflexive-transitive speaks_for
// relation the engine derives from them. The transitive rule mirrors the
// edge/path reachability shape used throughout the pack's Mangle
// schemas; the reflexive rule makes speaks_for(X, X) hold for every
// principal named in the graph, per spec.
const delegationSchema = `
Decl delegates_to(From, To) bound [/string, /string].
Decl principal(Name) bound [/string].
Decl speaks_for(From, To) bound [/string, /string].

speaks_for(X, X) :- principal(X).
speaks_for(X, Y) :- delegates_to(X, Y).
speaks_for(X, Z) :- delegates_to(X, Y), speaks_for(Y, Z).
`

// DatalogPrivilege resolves speaks_for over an explicit delegation graph
// using a Mangle Datalog engine instead of a fixed PrincipalSet: every
// grant is a fact, and speaks_for is a transitive-closure rule the engine
// re-evaluates on each Grant, so the graph can grow at runtime or be
// loaded from policy. Grants cannot be revoked.
type DatalogPrivilege struct {
	mu             sync.Mutex
	store          factstore.ConcurrentFactStore
	programInfo    *analysis.ProgramInfo
	delegatesToSym ast.PredicateSym
	principalSym   ast.PredicateSym
	speaksForSym   ast.PredicateSym
}

// NewDatalogPrivilege builds an engine holding an empty delegation graph.
func NewDatalogPrivilege() (*DatalogPrivilege, error) {
	unit, err := parse.Unit(bytes.NewReader([]byte(delegationSchema)))
	if err != nil {
		return nil, fmt.Errorf("privilege: parsing delegation schema: %w", err)
	}
	programInfo, err := analysis.AnalyzeOneUnit(parse.SourceUnit{Clauses: unit.Clauses, Decls: unit.Decls}, nil)
	if err != nil {
		return nil, fmt.Errorf("privilege: analyzing delegation schema: %w", err)
	}

	var delegatesToSym, principalSym, speaksForSym ast.PredicateSym
	for sym := range programInfo.Decls {
		switch sym.Symbol {
		case "delegates_to":
			delegatesToSym = sym
		case "principal":
			principalSym = sym
		case "speaks_for":
			speaksForSym = sym
		}
	}

	base := factstore.NewSimpleInMemoryStore()
	return &DatalogPrivilege{
		store:          factstore.NewConcurrentFactStore(base),
		programInfo:    programInfo,
		delegatesToSym: delegatesToSym,
		principalSym:   principalSym,
		speaksForSym:   speaksForSym,
	}, nil
}

// Grant adds a delegates_to(from, to) fact, registers both endpoints as
// known principals, and re-evaluates the transitive closure.
func (dp *DatalogPrivilege) Grant(from, to principal.Principal) error {
	dp.mu.Lock()
	defer dp.mu.Unlock()

	dp.store.Add(ast.Atom{Predicate: dp.principalSym, Args: []ast.BaseTerm{ast.String(string(from))}})
	dp.store.Add(ast.Atom{Predicate: dp.principalSym, Args: []ast.BaseTerm{ast.String(string(to))}})
	dp.store.Add(ast.Atom{
		Predicate: dp.delegatesToSym,
		Args:      []ast.BaseTerm{ast.String(string(from)), ast.String(string(to))},
	})

	if _, err := mengine.EvalProgramWithStats(dp.programInfo, dp.store); err != nil {
		return fmt.Errorf("privilege: evaluating delegation graph: %w", err)
	}
	return nil
}

// SpeaksFor reports whether from speaks for to: either they are the same
// principal and both appear in the graph, or a chain of delegates_to
// facts connects from to to.
func (dp *DatalogPrivilege) SpeaksFor(from, to principal.Principal) bool {
	dp.mu.Lock()
	defer dp.mu.Unlock()

	found := false
	_ = dp.store.GetFacts(ast.NewQuery(dp.speaksForSym), func(atom ast.Atom) error {
		if found || len(atom.Args) != 2 {
			return nil
		}
		fromTerm, ok1 := atom.Args[0].(ast.Constant)
		toTerm, ok2 := atom.Args[1].(ast.Constant)
		if ok1 && ok2 && fromTerm.Symbol == string(from) && toTerm.Symbol == string(to) {
			found = true
		}
		return nil
	})
	return found
}

// Rooted returns a Description whose SpeaksFor(target) is true when target
// is root itself (whether or not root appears in the graph) and otherwise
// asks whether root speaks for target in dp's graph, matching the
// single-argument shape the rest of the privilege package's Description
// interface expects.
func (dp *DatalogPrivilege) Rooted(root principal.Principal) Description {
	return rootedDatalogDescription{dp: dp, root: root}
}

// AsPrivilege wraps dp, rooted at root, as a Privilege usable with
// Downgrade and CanFlowToP. Endorse adds no integrity clauses for such a
// privilege: it only folds in the principals of a PrincipalSet.
func (dp *DatalogPrivilege) AsPrivilege(root principal.Principal) Privilege {
	return New(dp.Rooted(root))
}

type rootedDatalogDescription struct {
	dp   *DatalogPrivilege
	root principal.Principal
}

func (r rootedDatalogDescription) SpeaksFor(target principal.Principal) bool {
	if target == r.root {
		return true
	}
	return r.dp.SpeaksFor(r.root, target)
}
