// SPDX-License-Identifier: Apache-2.0

package schema

// schemaSource is the structural CUE schema shared by all supported version
// families. It pins down the shapes the walkers rely on (version string,
// file paths, contents resources) and stays open everywhere else so that
// version-specific fields validate without a schema per version.
const schemaSource = `
#resource: {
	source?:      string
	compression?: string
	httpHeaders?: [...{name: string, value?: string, ...}]
	verification?: {hash?: string, ...}
	...
}

ignition: {
	version: string & =~"^3\\.[0-9]+\\.[0-9]+$"
	config?: {
		merge?: [...#resource]
		replace?: #resource
		...
	}
	...
}

storage?: {
	files?: [...{
		path:      string & =~"^/"
		contents?: #resource
		append?: [...#resource]
		mode?:      int
		overwrite?: bool
		...
	}]
	directories?: [...{path: string & =~"^/", ...}]
	links?: [...{path: string & =~"^/", ...}]
	...
}

systemd?: {
	units?: [...{name: string, ...}]
	...
}

passwd?: {
	users?: [...{name: string, ...}]
	groups?: [...{name: string, ...}]
	...
}

kernelArguments?: {
	shouldExist?: [...string]
	shouldNotExist?: [...string]
	...
}

...
`
