package config

// LoadedSystemPrompts contains system-level instructions loaded from files
type LoadedSystemPrompts struct {
	AnalyzeMatch string
	ClassifyJD   string
}

// LoadedUserPrompts contains user-level prompt templates loaded from files
type LoadedUserPrompts struct {
	AnalyzeMatch string
}

// OperationLoadedPrompts holds loaded prompts for a specific operation
type OperationLoadedPrompts struct {
	SystemPrompts LoadedSystemPrompts
	UserPrompts   LoadedUserPrompts
}

// AllLoadedPrompts holds all loaded prompts for all operations
type AllLoadedPrompts struct {
	Global   OperationLoadedPrompts
	Analyze  OperationLoadedPrompts
	Classify OperationLoadedPrompts
}

var loadedPrompts AllLoadedPrompts

// GetPromptsForOperation returns a copy of the loaded prompts for an operation type
func GetPromptsForOperation(operationType string) OperationLoadedPrompts {
	switch operationType {
	case OperationAnalyze:
		return loadedPrompts.Analyze
	case OperationClassify:
		return loadedPrompts.Classify
	default:
		return loadedPrompts.Global
	}
}
