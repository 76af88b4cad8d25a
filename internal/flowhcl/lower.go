package flowhcl

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/flowgraph/internal/flowast"
)

// attrReturn is the reserved attribute name for the return statement.
const attrReturn = "return"

// bodyItem is one attribute or block paired with its source offset, so a
// body can be replayed in the order the author wrote it. HCL itself keeps
// attributes in a map; statement order matters here, blocks do not come
// interleaved with attributes for free.
type bodyItem struct {
	start int
	attr  *hclsyntax.Attribute
	block *hclsyntax.Block
}

func orderedItems(body *hclsyntax.Body) []bodyItem {
	items := make([]bodyItem, 0, len(body.Attributes)+len(body.Blocks))
	for _, attr := range body.Attributes {
		items = append(items, bodyItem{start: attr.NameRange.Start.Byte, attr: attr})
	}
	for _, block := range body.Blocks {
		items = append(items, bodyItem{start: block.TypeRange.Start.Byte, block: block})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].start < items[j].start })
	return items
}

// lowerWorkflow converts one workflow block into a structural function.
func lowerWorkflow(block *hclsyntax.Block, src []byte) (*flowast.Function, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	if len(block.Labels) != 1 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid workflow block",
			Detail:   "A workflow block requires exactly one label: the workflow name.",
			Subject:  &block.TypeRange,
		})
		return nil, diags
	}

	fn := &flowast.Function{Name: block.Labels[0]}

	for _, item := range orderedItems(block.Body) {
		if item.block != nil && item.block.Type == "param" {
			param, paramDiags := lowerParam(item.block, src)
			diags = append(diags, paramDiags...)
			if param != nil {
				fn.Params = append(fn.Params, *param)
			}
			continue
		}

		stmt, stmtDiags := lowerItem(item, src)
		diags = append(diags, stmtDiags...)
		if stmt != nil {
			fn.Body = append(fn.Body, stmt)
		}
	}

	return fn, diags
}

func lowerParam(block *hclsyntax.Block, src []byte) (*flowast.Param, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	if len(block.Labels) != 1 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid param block",
			Detail:   "A param block requires exactly one label: the parameter name.",
			Subject:  &block.TypeRange,
		})
		return nil, diags
	}

	param := &flowast.Param{Name: block.Labels[0]}

	if attr, ok := block.Body.Attributes["type"]; ok {
		// The type hint is advisory text, but a quoted string is the
		// common case and should come through unquoted.
		if val, valDiags := attr.Expr.Value(nil); !valDiags.HasErrors() && val.Type() == cty.String && !val.IsNull() {
			param.TypeHint = val.AsString()
		} else {
			param.TypeHint = rangeText(attr.Expr.Range(), src)
		}
	}
	if attr, ok := block.Body.Attributes["default"]; ok {
		// Defaults are captured as text, never evaluated.
		param.Default = rangeText(attr.Expr.Range(), src)
	}

	return param, diags
}

// lowerItem converts one statement-position attribute or block.
func lowerItem(item bodyItem, src []byte) (flowast.Statement, hcl.Diagnostics) {
	if item.attr != nil {
		value := lowerExpr(item.attr.Expr, src)
		if item.attr.Name == attrReturn {
			return &flowast.Return{Value: value}, nil
		}
		return &flowast.Assign{Target: item.attr.Name, Value: value}, nil
	}

	switch item.block.Type {
	case "let":
		return lowerLet(item.block, src)
	case "if":
		return lowerIf(item.block, src)
	case "for":
		return lowerFor(item.block, src)
	case "do":
		return lowerDo(item.block, src)
	default:
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Unknown %q block", item.block.Type),
			Detail:   "Statements inside a workflow body must be attributes or let, if, for, do or param blocks.",
			Subject:  &item.block.TypeRange,
		}}
	}
}

func lowerLet(block *hclsyntax.Block, src []byte) (flowast.Statement, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	if len(block.Labels) == 0 {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid let block",
			Detail:   "A let block requires at least one label naming its assignment target.",
			Subject:  &block.TypeRange,
		}}
	}

	attr, ok := block.Body.Attributes["value"]
	if !ok {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Missing value in let block",
			Detail:   "A let block requires a 'value' attribute.",
			Subject:  &block.TypeRange,
		}}
	}

	if len(block.Labels) == 1 {
		return &flowast.Assign{Target: block.Labels[0], Value: lowerExpr(attr.Expr, src)}, diags
	}

	tuple, ok := attr.Expr.(*hclsyntax.TupleConsExpr)
	if !ok || len(tuple.Exprs) != len(block.Labels) {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Mismatched let targets",
			Detail:   "A let block with several labels requires a tuple value with one element per label.",
			Subject:  attr.Expr.Range().Ptr(),
		}}
	}

	values := make([]flowast.Expr, 0, len(tuple.Exprs))
	for _, item := range tuple.Exprs {
		values = append(values, lowerExpr(item, src))
	}
	return &flowast.TupleAssign{Targets: block.Labels, Values: values}, diags
}

func lowerIf(block *hclsyntax.Block, src []byte) (flowast.Statement, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	if len(block.Labels) != 1 {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid if block",
			Detail:   "An if block requires exactly one label: the condition expression.",
			Subject:  &block.TypeRange,
		}}
	}

	thenBlock, thenDiags := findUniqueBlock(block.Body, "then")
	diags = append(diags, thenDiags...)
	elseBlock, elseDiags := findUniqueBlock(block.Body, "else")
	diags = append(diags, elseDiags...)

	if thenBlock == nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing then block",
			Detail:   "An if block requires a nested then block.",
			Subject:  &block.TypeRange,
		})
		return nil, diags
	}

	// The condition label travels verbatim; the predicate registry decides
	// later whether it parses into an evaluable expression.
	stmt := &flowast.If{Cond: &flowast.Opaque{Source: block.Labels[0]}}

	thenStmts, bodyDiags := lowerStatements(thenBlock.Body, src)
	diags = append(diags, bodyDiags...)
	stmt.Then = thenStmts

	if elseBlock != nil {
		elseStmts, bodyDiags := lowerStatements(elseBlock.Body, src)
		diags = append(diags, bodyDiags...)
		if elseStmts == nil {
			elseStmts = []flowast.Statement{}
		}
		stmt.Else = elseStmts
	}

	return stmt, diags
}

func lowerFor(block *hclsyntax.Block, src []byte) (flowast.Statement, hcl.Diagnostics) {
	if len(block.Labels) != 2 {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid for block",
			Detail:   "A for block requires two labels: the iteration variable and the iterable expression.",
			Subject:  &block.TypeRange,
		}}
	}

	body, diags := lowerStatements(block.Body, src)
	return &flowast.For{
		Var:      block.Labels[0],
		Iterable: &flowast.Opaque{Source: block.Labels[1]},
		Body:     body,
	}, diags
}

func lowerDo(block *hclsyntax.Block, src []byte) (flowast.Statement, hcl.Diagnostics) {
	attr, ok := block.Body.Attributes["call"]
	if !ok {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Missing call in do block",
			Detail:   "A do block requires a 'call' attribute holding the expression to run.",
			Subject:  &block.TypeRange,
		}}
	}
	return &flowast.ExprStmt{Value: lowerExpr(attr.Expr, src)}, nil
}

// lowerStatements converts a nested scope body (then/else arm, loop body).
// param blocks are only meaningful at the workflow's top level.
func lowerStatements(body *hclsyntax.Body, src []byte) ([]flowast.Statement, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	var stmts []flowast.Statement

	for _, item := range orderedItems(body) {
		if item.block != nil && item.block.Type == "param" {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Misplaced param block",
				Detail:   "param blocks are only allowed directly inside a workflow block.",
				Subject:  &item.block.TypeRange,
			})
			continue
		}
		stmt, stmtDiags := lowerItem(item, src)
		diags = append(diags, stmtDiags...)
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	return stmts, diags
}

// findUniqueBlock returns the single nested block of the given type, or an
// error diagnostic when it appears more than once.
func findUniqueBlock(body *hclsyntax.Body, name string) (*hclsyntax.Block, hcl.Diagnostics) {
	var found *hclsyntax.Block
	var diags hcl.Diagnostics

	for _, block := range body.Blocks {
		if block.Type != name {
			continue
		}
		if found != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  fmt.Sprintf("Duplicate %q block", name),
				Detail:   fmt.Sprintf("Only one %q block is allowed here.", name),
				Subject:  &block.TypeRange,
			})
			continue
		}
		found = block
	}

	return found, diags
}
