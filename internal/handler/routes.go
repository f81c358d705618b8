package handler

// APIV1Prefix is the versioned mount point of the resource routes.
const APIV1Prefix = "/api/v1"
