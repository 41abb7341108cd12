// Package form provides field validators and object schemas for form values.
//
// A Schema lists fields with their validators. Validation runs every field
// and stops at the first failing validator per field:
//
//	var Login = form.Object(
//	    form.String("email", form.Required(""), form.Pattern(`^\S+@\S+$`, "")),
//	    form.String("password", form.Required("")),
//	)
//
//	errs := Login.Validate(map[string]any{"email": "user@"})
//	if !errs.OK() {
//	    for _, e := range errs {
//	        fmt.Println(e.Field, e.Message)
//	    }
//	}
//
// Empty messages are replaced by "<field> is a required field" and
// "<field> is invalid".
package form
