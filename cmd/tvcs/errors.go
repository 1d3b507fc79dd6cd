package main

import (
	"fmt"

	"github.com/utkarsh5026/tvcs/pkg/common/err"
)

const pkgName = "tvcs"

// invalidInput reports arguments a command cannot act on.
func invalidInput(op, format string, args ...any) error {
	return err.New(pkgName, err.CodeInvalidInput, op, fmt.Sprintf(format, args...), nil)
}
