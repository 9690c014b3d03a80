// Package heap implements a boundary-tag dynamic allocator with an explicit
// free list over a contiguous growable byte arena.
//
// # Overview
//
// Every block carries a one-word header and footer encoding (size, allocated).
// Free blocks additionally thread prev/next arena offsets through their first
// two payload words, forming an unordered doubly-linked free list. Two
// zero-size allocated sentinels (a prologue footer and an epilogue header)
// bound the heap so coalescing never reads outside the managed range.
//
// # Policies
//
//   - First-fit search over the free list
//   - LIFO insertion: freed and coalesced blocks become the new list head
//   - Split on allocation when the remainder can form a legal block
//   - Immediate coalescing on free and growth; no two free blocks are ever
//     address-adjacent once an operation returns
//   - Growth only; the heap never shrinks
//
// # Concurrency
//
// A Heap is NOT thread-safe. All state is mutable and shared across calls;
// callers using a Heap from multiple goroutines must serialize every
// operation with their own mutex.
package heap
