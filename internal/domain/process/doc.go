// Package process accumulates the runtime command line of a launch and
// spawns it.
//
// A Spec is built incrementally by the launch pipeline: memory sizing, an
// ordered duplicate-free classpath, runtime flags, the main class and the
// application arguments. Command renders it as argv:
//
//	[runtime, -Xms.., -Xmx.., -XX:MaxPermSize=.., flags..., -cp, classpath, mainClass, args...]
//
// Start launches the rendered command and returns without waiting for it.
package process
