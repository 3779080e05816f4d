// Package store persists command lines as YAML documents, one file per
// name, so an invocation can be replayed later through the resolver.
//
// # Overview
//
// A Store binds a directory. Save joins tokens into a single command string
// and writes a document carrying the name, the command and a timestamp;
// Load reads it back through an expiring LRU cache and splits it into
// tokens again. Watch invalidates cache entries when files change on disk,
// which keeps long-running consoles coherent with external edits.
//
// # Usage
//
//	st, err := store.NewStore(&store.Config{Dir: "~/.cog/saved"})
//	...
//	st.Save("deploy-prod", tokens)
//	tokens, err = st.Load("deploy-prod")
package store
