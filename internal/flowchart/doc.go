// Package flowchart implements the session-based flowchart document pipeline.
//
// A session is one user's in-progress flowchart conversation. It is identified
// by a UUID allocated at creation, scoped under the owner's namespace, and
// holds exactly one graph-description (DOT) document that is mutated in place
// by each instruction. Every successful operation runs the same three stages:
//
//	generate/load -> persist -> render
//
// The graph text generator and the render pipeline are injected capabilities
// (see Generator and Renderer); the orchestrator never assumes they are
// deterministic or fast, and never retries them. Failures abort the pipeline
// with a specific error kind and never undo side effects of earlier stages,
// except temporary images, which are always removed.
package flowchart
