// Package err provides the error type shared across the module.
//
// Each package defines a package name constant and thin constructors that
// fill in the code for its failure modes:
//
//	const pkgName = "store"
//
//	func notFound(op string, key objects.ObjectHash) error {
//	    return err.New(pkgName, err.CodeNotFound, op, "object not found", nil).
//	        WithContext("key", key.String())
//	}
//
// Callers test for a category with IsCode, which sees through any amount of
// wrapping:
//
//	if err.IsCode(e, err.CodeNotFound) {
//	    // handle missing object
//	}
package err
