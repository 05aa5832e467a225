// Package handlers implements the HTTP API surface: conversion endpoints
// per executor, the unified routing endpoint, the remote file proxy, the
// format registry, and the health and version probes.
package handlers
