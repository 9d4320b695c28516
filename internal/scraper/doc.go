// Package scraper collects hackathon listings from source platforms.
//
// Each source implements the Source interface and is responsible only for
// producing event records; date resolution and filtering happen downstream.
// Where a platform exposes a JSON API (Devpost, Unstop) the source reads it
// directly instead of driving a browser; HTML-only platforms are parsed with
// goquery or crawled with colly. All parsing is factored over io.Reader or
// raw payloads so fixture tests need no network.
package scraper
