//go:build !linux

package stressor

// MAP_POPULATE is Linux-only; elsewhere the first sweep warms the pages.
const mapPopulate = 0
