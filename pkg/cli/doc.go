// Copyright (c) 2025, esadmctl authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli implements the command-line interface of esadmctl.
//
// # Overview
//
// esadmctl administers the Elasticsearch and Kibana deployments of one
// environment: cluster inspection, snapshot restores, ILM and data stream
// repair, index management, and Fleet housekeeping. Every operation exists
// twice: as a direct subcommand and as an entry of the interactive menu.
//
// # Commands
//
// Operations are grouped by area:
//
//	esadmctl --env test cluster health
//	esadmctl --env test cluster overview --format table
//	esadmctl --env prod snapshots restore
//	esadmctl --env prod snapshots verify
//	esadmctl --env test indices list
//	esadmctl --env test datastreams repair
//	esadmctl --env test ilm explain
//	esadmctl --env test fleet agents
//	esadmctl --env test kibana export
//
// The interactive menu browses the same operations:
//
//	esadmctl --env test menu
//
// # Global Flags
//
//	--env, -e        Environment to operate on (test, prod), required
//	--config-dir     Directory holding the .env.<environment> files
//	--format, -t     Output format: json, yaml, table (default: json)
//	--verbose        Enable debug logging
//
// # Configuration
//
// Each environment is defined by a dotenv file .env.<environment> naming the
// cluster addresses and credentials, optionally overlaid by
// .env.restore.<environment> with restore defaults. See pkg/config.
//
// # Exit Codes
//
//	0  Success, including a normal menu quit
//	1  Invalid arguments, missing configuration, or a failed operation
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized
// packages:
//   - pkg/elastic - Elasticsearch API surface
//   - pkg/kibana - Kibana and Fleet API surface
//   - pkg/restore - snapshot restore workflow
//   - pkg/datastream - backing-index repair
//   - pkg/inspect - parallel cluster overview
//   - pkg/verify - post-restore verification
//   - pkg/serializer - output formatting and entity export
//
// All operations dispatch through a single Registry; the command tree and
// the interactive menu are two views of the same registrations.
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'main.version=1.0.0'"
package cli
