package cli

// Indirection layer to allow stubbing in tests

var (
	fnUp       = upAction
	fnCheck    = checkAction
	fnPull     = pullAction
	fnRunModel = runModelAction
	fnModels   = modelsAction
	fnDomains  = domainsAction
)
