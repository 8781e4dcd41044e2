// Package export renders trajectories and sweeps for people and for other
// tools: CSV and JSON on any io.Writer, tab-aligned tables, and terminal
// charts. Nothing here touches the filesystem.
package export
