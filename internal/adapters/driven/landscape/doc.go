// Package landscape loads the landscape definition (landscape.yml) and
// settings (settings.yml) from a local file or a URL.
package landscape
