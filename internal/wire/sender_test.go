package wire

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// TestSenderWritesPackets spins up a loopback listener and checks that
// Send dials it and writes packet bytes back to back, undisturbed.
func TestSenderWritesPackets(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		buf := make([]byte, 2*PacketSize)
		n, _ := readFull(conn, buf)
		received <- buf[:n]
	}()

	s := NewSender(ln.Addr().String(), zerolog.Nop())
	defer s.Close()

	var p1, p2 Packet
	for i := range p1 {
		p1[i] = byte(i)
	}
	for i := range p2 {
		p2[i] = byte(255 - i)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Send(ctx, []Packet{p1, p2}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	select {
	case got := <-received:
		if len(got) != 2*PacketSize {
			t.Fatalf("received %d bytes, want %d", len(got), 2*PacketSize)
		}
		for i, b := range p1 {
			if got[i] != b {
				t.Fatalf("packet 1 byte %d = %d, want %d", i, got[i], b)
			}
		}
		for i, b := range p2 {
			if got[PacketSize+i] != b {
				t.Fatalf("packet 2 byte %d = %d, want %d", i, got[PacketSize+i], b)
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the listener to receive packets")
	}
}

func readFull(conn net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		n, err := conn.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// TestSendEmptyIsNoop checks that Send does nothing (including not
// dialing) when given no packets.
func TestSendEmptyIsNoop(t *testing.T) {
	s := NewSender("127.0.0.1:1", zerolog.Nop()) // deliberately unreachable
	if err := s.Send(context.Background(), nil); err != nil {
		t.Fatalf("Send(nil) = %v, want nil", err)
	}
}
