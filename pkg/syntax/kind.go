package syntax

// Kind tags the concrete type of a Node.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindFile
	KindBlock
	KindExpressionStmt
	KindAssignmentStmt
	KindReturnStmt
	KindPassStmt
	KindIfStmt
	KindWhileStmt
	KindForStmt
	KindWithStmt
	KindTryStmt
	KindExceptHandler
	KindFuncDef
	KindClassDef
	KindOtherStmt
	KindCallExpr
	KindMemberExpr
	KindNameExpr
	KindStrExpr
	KindIntExpr
	KindOtherExpr
)

var kindNames = [...]string{
	KindInvalid:        "Invalid",
	KindFile:           "File",
	KindBlock:          "Block",
	KindExpressionStmt: "ExpressionStmt",
	KindAssignmentStmt: "AssignmentStmt",
	KindReturnStmt:     "ReturnStmt",
	KindPassStmt:       "PassStmt",
	KindIfStmt:         "IfStmt",
	KindWhileStmt:      "WhileStmt",
	KindForStmt:        "ForStmt",
	KindWithStmt:       "WithStmt",
	KindTryStmt:        "TryStmt",
	KindExceptHandler:  "ExceptHandler",
	KindFuncDef:        "FuncDef",
	KindClassDef:       "ClassDef",
	KindOtherStmt:      "OtherStmt",
	KindCallExpr:       "CallExpr",
	KindMemberExpr:     "MemberExpr",
	KindNameExpr:       "NameExpr",
	KindStrExpr:        "StrExpr",
	KindIntExpr:        "IntExpr",
	KindOtherExpr:      "OtherExpr",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// ParseKind returns the Kind whose name is s.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if i == int(KindInvalid) {
			continue
		}
		if name == s {
			return Kind(i), true //nolint:gosec
		}
	}
	return KindInvalid, false
}
