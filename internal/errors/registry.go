package errors

// ErrorTemplate is the registered text of an error code.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid nestroute.json",
		Detail:   "The nestroute.json configuration file is malformed.",
		DocURL:   "https://nestroute.dev/docs/errors/E120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid file suffix",
		Detail:   "The generated file suffix must end in .go and must not end in _test.go.",
		DocURL:   "https://nestroute.dev/docs/errors/E121",
	},

	// ============================================
	// CLI Errors (E140-E159)
	// ============================================

	"E141": {
		Category: CategoryCLI,
		Message:  "No target packages",
		Detail:   "No package directories were given on the command line and nestroute.json lists none.",
		DocURL:   "https://nestroute.dev/docs/errors/E141",
	},
	"E142": {
		Category: CategoryCLI,
		Message:  "Generated code is out of date",
		Detail:   "The generated file differs from what nestroute gen would write. Run nestroute gen and commit the result.",
		DocURL:   "https://nestroute.dev/docs/errors/E142",
	},
	"E143": {
		Category: CategoryCLI,
		Message:  "Configuration already exists",
		Detail:   "nestroute init found an existing nestroute.json and will not overwrite it without --force.",
		DocURL:   "https://nestroute.dev/docs/errors/E143",
	},

	// ============================================
	// Generate Errors (E160-E179)
	// ============================================

	"E160": {
		Category: CategoryGenerate,
		Message:  "Code generation failed",
		Detail:   "The generated source could not be formatted. This is a bug in nestroute.",
		DocURL:   "https://nestroute.dev/docs/errors/E160",
	},
	"E161": {
		Category: CategoryGenerate,
		Message:  "Go source could not be parsed",
		Detail:   "A file in the package has a syntax error. Fix it before generating targets.",
		DocURL:   "https://nestroute.dev/docs/errors/E161",
	},
	"E162": {
		Category: CategoryGenerate,
		Message:  "No targets found",
		Detail:   "The package declares no //nestroute:target interfaces and no //nestroute:params records.",
		DocURL:   "https://nestroute.dev/docs/errors/E162",
	},

	// ============================================
	// Validation Errors (E200-E229)
	// ============================================

	"E200": {
		Category: CategoryValidation,
		Message:  "Duplicate route segment",
		Detail:   "Two variants of the same target render the same literal segment, so the second could never be parsed.",
		DocURL:   "https://nestroute.dev/docs/errors/E200",
	},
	"E201": {
		Category: CategoryValidation,
		Message:  "Multiple index variants",
		Detail:   "Only one variant of a target may own the empty path.",
		DocURL:   "https://nestroute.dev/docs/errors/E201",
	},
	"E202": {
		Category: CategoryValidation,
		Message:  "Multiple default variants",
		Detail:   "Only one variant of a target may be its default value.",
		DocURL:   "https://nestroute.dev/docs/errors/E202",
	},
	"E203": {
		Category: CategoryValidation,
		Message:  "Index variant has positional fields",
		Detail:   "An index variant consumes no path segments, so it cannot have plain positional fields. Use query fields or a nested field instead.",
		DocURL:   "https://nestroute.dev/docs/errors/E203",
	},
	"E204": {
		Category: CategoryValidation,
		Message:  "Nested field is not the last positional field",
		Detail:   "A nested field owns all remaining path segments, so no positional field may follow it.",
		DocURL:   "https://nestroute.dev/docs/errors/E204",
	},
	"E205": {
		Category: CategoryValidation,
		Message:  "Unknown route tag",
		Detail:   "The route struct tag accepts query, query=<name>, nested, nested,default, nested,default=<func>, params and default.",
		DocURL:   "https://nestroute.dev/docs/errors/E205",
	},
	"E206": {
		Category: CategoryValidation,
		Message:  "Unsupported positional field type",
		Detail:   "A positional field consumes exactly one path segment and must be a scalar or text-marshalable type. Pointers, slices and maps are only allowed on query fields.",
		DocURL:   "https://nestroute.dev/docs/errors/E206",
	},
	"E207": {
		Category: CategoryValidation,
		Message:  "Positional field in params record",
		Detail:   "A params record is rendered into the query only. Every exported field needs a route:\"query\" or route:\"params\" tag.",
		DocURL:   "https://nestroute.dev/docs/errors/E207",
	},
	"E208": {
		Category: CategoryValidation,
		Message:  "Unknown target",
		Detail:   "The variant directive names a target interface that is not declared with //nestroute:target in this package.",
		DocURL:   "https://nestroute.dev/docs/errors/E208",
	},
	"E209": {
		Category: CategoryValidation,
		Message:  "Nested target has no default",
		Detail:   "The field asks for the nested target's own default, but that target marks no variant as default.",
		DocURL:   "https://nestroute.dev/docs/errors/E209",
	},
	"E210": {
		Category: CategoryValidation,
		Message:  "Directive on unsupported declaration",
		Detail:   "//nestroute:target belongs on an interface type; //nestroute:variant and //nestroute:params belong on struct types.",
		DocURL:   "https://nestroute.dev/docs/errors/E210",
	},
	"E211": {
		Category: CategoryValidation,
		Message:  "Invalid directive",
		Detail:   "The directive has an unknown option or is missing its target name.",
		DocURL:   "https://nestroute.dev/docs/errors/E211",
	},
	"E212": {
		Category: CategoryValidation,
		Message:  "Target has no variants",
		Detail:   "A target interface must be implemented by at least one //nestroute:variant struct.",
		DocURL:   "https://nestroute.dev/docs/errors/E212",
	},
	"E213": {
		Category: CategoryValidation,
		Message:  "Unsupported query field type",
		Detail:   "A query field must be a scalar V, an optional *V or a multi-valued []V.",
		DocURL:   "https://nestroute.dev/docs/errors/E213",
	},
	"E214": {
		Category: CategoryValidation,
		Message:  "Empty route segment",
		Detail:   "A variant segment must not be empty and must not contain a slash. Mark the variant index to route the empty path.",
		DocURL:   "https://nestroute.dev/docs/errors/E214",
	},
}
