// Package startup handles startup logging: banner, system information,
// pipeline initialization, route tables, and shutdown progress.
package startup
