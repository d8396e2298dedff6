/*
sift - multi-host file inventory browser.

sift talks to a sift inventory server that collects file metadata reported by
scanning agents running on many machines ("hosts"), and presents the union of
all hosts as one logical filesystem with duplicate files called out.

# Key Features

  * Browsing the merged directory tree of any set of selected hosts
  * Duplicate detection within one host and across hosts (by content hash)
  * "Extra copies" accounting - how many files could be removed while keeping
    one copy of each distinct content
  * Filename, hash and subtree-duplicate search over the whole inventory
  * find/ls/du/status commands for shell use, plus an interactive browser

# Key Components

  * browse - the client-side aggregation engine that merges per-host
    directory listings into one duplicate-aware tree
  * webc - HTTP client of the inventory server query endpoints
  * sift - the command line and interactive interface

See the corresponding subdirectories for more information about these components.

*/
package sift
