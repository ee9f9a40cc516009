// Package preflight provides readiness checks for the filesystem paths and
// services doorops depends on.
//
// These checks run in two contexts:
//   - Write procedures that depend on the uploads directory call
//     RequireAssetRoot before loading any rows, so an unmounted volume
//     fails the run instead of demoting every local asset to the placeholder.
//   - The CLI "doorops status" command uses RunAll to display health.
package preflight
