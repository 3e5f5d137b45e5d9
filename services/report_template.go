package services

const reportHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>IPO Monitor {{.Date}}</title>
  <style>
    body {
      margin: 0;
      padding: 24px;
      background-color: #f3f4f6;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
      color: #111827;
      line-height: 1.5;
    }

    .container {
      max-width: 720px;
      margin: 0 auto;
      background: #ffffff;
      border-radius: 8px;
      border: 1px solid #e5e7eb;
      overflow: hidden;
    }

    .header {
      padding: 20px 24px;
      background: linear-gradient(135deg, #1f2d3d 0%, #37393b 100%);
      color: #ffffff;
    }

    .header .date {
      font-size: 22px;
      font-weight: 700;
      letter-spacing: 0.03em;
    }

    .header .subtitle {
      font-size: 14px;
      opacity: 0.9;
    }

    .section {
      padding: 16px 24px;
      border-top: 1px solid #f3f4f6;
    }

    .section-title {
      font-size: 11px;
      font-weight: 700;
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.1em;
      margin-bottom: 12px;
    }

    .summary-list {
      margin: 0;
      padding-left: 20px;
      font-size: 14px;
    }

    .summary-list li {
      margin-bottom: 4px;
    }

    table.listings {
      width: 100%;
      border-collapse: collapse;
      font-size: 13px;
    }

    table.listings th {
      text-align: left;
      padding: 8px 10px;
      background: #f9fafb;
      color: #6b7280;
      font-weight: 600;
      text-transform: uppercase;
      font-size: 10px;
      letter-spacing: 0.05em;
      border-bottom: 1px solid #e5e7eb;
    }

    table.listings td {
      padding: 8px 10px;
      border-bottom: 1px solid #f3f4f6;
    }

    .qualified-badge {
      display: inline-block;
      padding: 2px 8px;
      font-size: 10px;
      font-weight: 600;
      border-radius: 4px;
      background: #dcfce7;
      color: #166534;
      text-transform: uppercase;
      letter-spacing: 0.05em;
    }

    .empty-note {
      font-size: 14px;
      color: #374151;
    }

    .footer {
      padding: 16px 24px;
      font-size: 12px;
      color: #9ca3af;
      text-align: center;
      background: #f9fafb;
      border-top: 1px solid #f3f4f6;
    }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <div class="date">IPO Monitor {{.Date}}</div>
      <div class="subtitle">U.S. same-day IPO calendar report</div>
    </div>

    <div class="section">
      <div class="section-title">Summary</div>
      <ul class="summary-list">
        {{range .Summary}}{{if .}}
        <li>{{.}}</li>
        {{end}}{{end}}
      </ul>
    </div>

    <div class="section">
      <div class="section-title">U.S. Listings</div>
      {{if .Listings}}
      <table class="listings">
        <tr>
          <th>Symbol</th>
          <th>Name</th>
          <th>Exchange</th>
          <th>Price</th>
          <th>Shares</th>
          <th>Offer Amount</th>
          <th></th>
        </tr>
        {{range .Listings}}
        <tr>
          <td>{{.Symbol}}</td>
          <td>{{.Name}}</td>
          <td>{{.Exchange}}</td>
          <td>{{.Price}}</td>
          <td>{{.Shares}}</td>
          <td>{{.OfferAmount}}</td>
          <td>{{if .Qualified}}<span class="qualified-badge">Qualified</span>{{end}}</td>
        </tr>
        {{end}}
      </table>
      {{else}}
      <div class="empty-note">No U.S. same-day IPO listings with computable offer amounts.</div>
      {{end}}
    </div>

    <div class="footer">
      Generated by ipo-monitor
    </div>
  </div>
</body>
</html>`
