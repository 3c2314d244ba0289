// Package mechanism turns front-end declarations into validated core
// entities and registers them with a compilation context.
//
// Every constructor validates its input before anything is registered, so a
// failed declaration leaves the context unchanged. Emission-time concerns
// (unit conversion, dimensional analysis) belong to package compiler.
package mechanism
