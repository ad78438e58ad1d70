/*
Package errors implements custom error interfaces for the escrow node.

Reuse the root errors declared in this package whenever possible and declare
a custom package error only when the failure is specific to that extension.
Extensions register their own codes with Register(code, description). The
escrow and factory extensions do that for the settlement and deployment
failures they can report.

Code stands for ABCI error code, which allows to distinguish types of errors
on the client side and act accordingly.

Errors created with ErrXyz.New("...") or errors.Wrap(err, "...") carry a
stacktrace recorded at the point of creation. Wrapping multiple times keeps
only the first stacktrace.

Once you have an error, you can use `fmt.Printf/Sprintf` to get more context
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
