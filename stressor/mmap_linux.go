package stressor

import "golang.org/x/sys/unix"

// Pre-fault pages at map time so the first benchmark pass does not pay
// page-fault cost inside the timed window.
const mapPopulate = unix.MAP_POPULATE
