// Package pools provides object pooling for reducing GC pressure.
//
// The equilibrium solver allocates scratch position/velocity buffers for
// every solve; pooling them keeps repeated solves (config updates,
// central-node reassignment) from churning the heap:
//
//   - Vec3Pool: size-class based pooling for []space.Vec3 scratch buffers
package pools
